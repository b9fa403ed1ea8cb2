// Package testutil provides small helpers shared by unit tests.
package testutil

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// StaticTokenCredential is an azcore.TokenCredential returning a fixed
// token. It never performs network I/O, which keeps client-construction
// tests hermetic.
type StaticTokenCredential struct {
	Token string
}

// GetToken returns the fixed token with a far-future expiry.
func (c StaticTokenCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	token := c.Token
	if token == "" {
		token = "test-token"
	}
	return azcore.AccessToken{
		Token:     token,
		ExpiresOn: time.Now().Add(time.Hour),
	}, nil
}
