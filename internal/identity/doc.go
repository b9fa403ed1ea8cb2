// Package identity implements the confidential-client credential provider.
//
// A Provider is scoped to one tenant. Authenticate retrieves the client
// secret from a pluggable key store, exposes the plain form only for the
// duration of the delegated token exchange, and destroys it on every exit
// path. The exchange itself is delegated to a TokenAcquirer; the default
// acquirer wraps azidentity's ClientSecretCredential.
//
// The provider holds no state between calls and caches neither secrets nor
// tokens; token lifetime management belongs to the acquisition capability.
package identity
