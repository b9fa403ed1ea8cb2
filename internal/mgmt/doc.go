// Package mgmt adapts the local server model onto the Azure SQL
// management plane.
//
// The Adapter exposes get/list/upsert/delete keyed by resource group and
// server name. Every operation constructs a request-scoped servers client
// through a ClientFactory, tagged with a fresh correlation ID; nothing is
// cached between calls. Reads are idempotent, upsert creates or updates,
// and delete only starts the remote deletion without awaiting it.
//
// Remote failures wrap azsm.ErrRemoteOperationFailed and carry the
// service-supplied diagnostic unmodified. The administrator password leaves
// its protected form only at the remote call boundary.
package mgmt
