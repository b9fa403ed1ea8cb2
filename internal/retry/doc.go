// Package retry provides caller-side retry for management-plane calls.
//
// The credential provider and the adapter never retry internally; the CLI
// wraps idempotent reads and upserts in an Executor configured with an ARM
// error classifier and exponential backoff. Deletions are fire-and-forget
// and are never retried.
package retry
