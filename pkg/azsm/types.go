package azsm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AccessToken is the result of a confidential-client token exchange.
// The token is returned exactly as the identity provider issued it;
// lifetime tracking and refresh belong to the acquisition capability.
type AccessToken struct {
	// Token is the opaque bearer token.
	Token string

	// ExpiresOn is the provider-reported expiry time.
	ExpiresOn time.Time
}

// SecretStore retrieves protected client secrets keyed by client and tenant.
// Implementations:
//   - keystore.Memory: in-process map, used by tests and embedders
//   - keystore.EnvFile: godotenv-format secrets file
//   - keystore.KeyVault: Azure Key Vault
type SecretStore interface {
	// Retrieve returns the protected secret for the (clientID, tenantID)
	// pair, or an error wrapping ErrCredentialNotFound when no matching
	// secret exists. Ownership of the returned Secret passes to the caller,
	// which is responsible for destroying it.
	Retrieve(ctx context.Context, clientID, tenantID string) (*Secret, error)
}

// TokenAcquirer performs the delegated confidential-client token exchange.
// The default implementation wraps azidentity.ClientSecretCredential;
// tests substitute mocks.
type TokenAcquirer interface {
	// AcquireToken exchanges the client secret for an access token for the
	// given audience. When scopes is empty, the implementation derives the
	// effective scope from the audience. The secret is supplied in plain
	// form strictly at this call boundary and must not be retained by the
	// implementation.
	AcquireToken(ctx context.Context, tenantID, clientID, clientSecret, audience string, scopes []string) (AccessToken, error)
}

// Server is the local model of a managed SQL server. Instances are
// request-scoped: constructed per call from the wire representation and
// never persisted by this module.
type Server struct {
	// ResourceGroup is the Azure resource group containing the server.
	ResourceGroup string

	// Name is the server name, unique within the resource group.
	Name string

	// Version is the SQL server version (e.g. "12.0").
	Version string

	// AdminUser is the administrator login name.
	AdminUser string

	// AdminPassword is the administrator password in protected form.
	// Only Upsert reads it, and only at the remote call boundary.
	// Nil for servers read back from the management plane; the API
	// never returns passwords.
	AdminPassword *Secret

	// Location is the Azure region (e.g. "westeurope").
	Location string

	// State is the provisioning state reported by the management plane.
	// Read-only; ignored on Upsert.
	State string

	// FullyQualifiedDomainName is the server's FQDN as reported by the
	// management plane. Read-only; ignored on Upsert.
	FullyQualifiedDomainName string
}

// Validate checks that the Server carries the fields required for an upsert.
// It returns a multi-error if multiple validation failures occur.
func (s *Server) Validate() error {
	var errs []error

	if s.ResourceGroup == "" {
		errs = append(errs, fmt.Errorf("ResourceGroup is required: %w", ErrInvalidConfig))
	}

	if s.Name == "" {
		errs = append(errs, fmt.Errorf("Name is required: %w", ErrInvalidConfig))
	}

	if s.Location == "" {
		errs = append(errs, fmt.Errorf("Location is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
