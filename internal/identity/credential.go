package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// Credential adapts a Provider to azcore.TokenCredential, so SDK clients
// (the management plane, Key Vault) authenticate through the key-store
// flow. Each GetToken call runs a full Authenticate; caching, if any, is
// the SDK pipeline's concern.
type Credential struct {
	provider *Provider
	clientID string
}

// NewCredential creates a TokenCredential that authenticates clientID
// through the given provider.
func NewCredential(provider *Provider, clientID string) (*Credential, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required: %w", azsm.ErrInvalidConfig)
	}
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required: %w", azsm.ErrInvalidConfig)
	}
	return &Credential{provider: provider, clientID: clientID}, nil
}

// GetToken implements azcore.TokenCredential. The audience is recovered
// from the first requested scope.
func (c *Credential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if len(options.Scopes) == 0 {
		return azcore.AccessToken{}, fmt.Errorf("at least one scope is required: %w", azsm.ErrInvalidConfig)
	}

	audience := strings.TrimSuffix(options.Scopes[0], azsm.DefaultScopeSuffix)
	token, err := c.provider.Authenticate(ctx, c.clientID, audience, options.Scopes...)
	if err != nil {
		return azcore.AccessToken{}, err
	}
	return azcore.AccessToken{Token: token.Token, ExpiresOn: token.ExpiresOn}, nil
}

var _ azcore.TokenCredential = (*Credential)(nil)
