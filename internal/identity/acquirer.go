package identity

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// EntraAcquirer performs the confidential-client flow against Entra ID
// using azidentity. A fresh ClientSecretCredential is built per call, so the
// acquirer itself retains neither the secret nor any token between calls.
type EntraAcquirer struct {
	options *azidentity.ClientSecretCredentialOptions
}

// NewEntraAcquirer creates an acquirer targeting the Azure public cloud.
func NewEntraAcquirer() *EntraAcquirer {
	return &EntraAcquirer{}
}

// NewEntraAcquirerWithOptions creates an acquirer with explicit credential
// options, e.g. for sovereign clouds.
func NewEntraAcquirerWithOptions(options *azidentity.ClientSecretCredentialOptions) *EntraAcquirer {
	return &EntraAcquirer{options: options}
}

// AcquireToken exchanges the client secret for an access token for the
// given audience. An empty scope list falls back to the audience-derived
// default scope (see DeriveScope). The secret is used only to construct the
// transient credential and is not retained.
func (a *EntraAcquirer) AcquireToken(ctx context.Context, tenantID, clientID, clientSecret, audience string, scopes []string) (azsm.AccessToken, error) {
	cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, a.options)
	if err != nil {
		return azsm.AccessToken{}, fmt.Errorf("failed to create client secret credential: %w", err)
	}

	if len(scopes) == 0 {
		scopes = []string{DeriveScope(audience)}
	}

	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		return azsm.AccessToken{}, fmt.Errorf("token acquisition failed: %w", err)
	}

	return azsm.AccessToken{Token: token.Token, ExpiresOn: token.ExpiresOn}, nil
}

var _ azsm.TokenAcquirer = (*EntraAcquirer)(nil)
