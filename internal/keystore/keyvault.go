package keystore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// vaultClient is the slice of the azsecrets client the store needs.
// Narrowed for testability.
type vaultClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// KeyVault is a SecretStore backed by Azure Key Vault. Secrets are named
// <client>-<tenant> (see VaultSecretName) and the latest version is read.
type KeyVault struct {
	client   vaultClient
	vaultURL string
}

// NewKeyVault creates a store reading from the vault at vaultURL
// (e.g. "https://myvault.vault.azure.net") using the given credential.
func NewKeyVault(vaultURL string, credential azcore.TokenCredential) (*KeyVault, error) {
	if vaultURL == "" {
		return nil, fmt.Errorf("vault URL is required: %w", azsm.ErrInvalidConfig)
	}

	client, err := azsecrets.NewClient(vaultURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	return &KeyVault{client: client, vaultURL: vaultURL}, nil
}

// Retrieve returns the protected secret for the pair. A vault 404 maps to
// azsm.ErrCredentialNotFound; every other vault error propagates with the
// service diagnostic intact.
func (s *KeyVault) Retrieve(ctx context.Context, clientID, tenantID string) (*azsm.Secret, error) {
	name := VaultSecretName(clientID, tenantID)

	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("vault %s has no secret %q for client %q in tenant %q: %w",
				s.vaultURL, name, clientID, tenantID, azsm.ErrCredentialNotFound)
		}
		return nil, fmt.Errorf("failed to read secret %q from %s: %w", name, s.vaultURL, err)
	}

	if resp.Value == nil {
		return nil, fmt.Errorf("secret %q in %s has no value: %w", name, s.vaultURL, azsm.ErrCredentialNotFound)
	}
	return azsm.NewSecret(*resp.Value), nil
}

// isNotFound reports whether err is an HTTP 404 from the vault.
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

var _ azsm.SecretStore = (*KeyVault)(nil)
