package identity

import (
	"context"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/azsm/internal/keystore"
	"github.com/vvka-141/azsm/pkg/azsm"
)

func TestCredential_GetToken(t *testing.T) {
	store := keystore.NewMemory()
	store.Put("app-1", "t-1", "S1")

	expiresOn := time.Now().Add(time.Hour).Truncate(time.Second)
	acquirer := &mockAcquirer{token: azsm.AccessToken{Token: "arm-token", ExpiresOn: expiresOn}}
	provider := newTestProvider(t, store, acquirer)

	cred, err := NewCredential(provider, "app-1")
	require.NoError(t, err)

	token, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{
		Scopes: []string{"https://management.azure.com/.default"},
	})
	require.NoError(t, err)

	assert.Equal(t, "arm-token", token.Token)
	assert.Equal(t, expiresOn, token.ExpiresOn)
	assert.Equal(t, "https://management.azure.com", acquirer.audience)
	assert.Equal(t, []string{"https://management.azure.com/.default"}, acquirer.scopes)
	assert.Equal(t, "S1", acquirer.seenSecret)
}

func TestCredential_GetTokenRequiresScopes(t *testing.T) {
	provider := newTestProvider(t, keystore.NewMemory(), &mockAcquirer{})
	cred, err := NewCredential(provider, "app-1")
	require.NoError(t, err)

	_, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	assert.ErrorIs(t, err, azsm.ErrInvalidConfig)
}

func TestCredential_GetTokenPropagatesCredentialMiss(t *testing.T) {
	provider := newTestProvider(t, keystore.NewMemory(), &mockAcquirer{})
	cred, err := NewCredential(provider, "app-2")
	require.NoError(t, err)

	_, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{
		Scopes: []string{"https://management.azure.com/.default"},
	})
	assert.ErrorIs(t, err, azsm.ErrCredentialNotFound)
}

func TestNewCredential_Validation(t *testing.T) {
	provider := newTestProvider(t, keystore.NewMemory(), &mockAcquirer{})

	_, err := NewCredential(nil, "app-1")
	assert.ErrorIs(t, err, azsm.ErrInvalidConfig)

	_, err = NewCredential(provider, "")
	assert.ErrorIs(t, err, azsm.ErrInvalidConfig)
}
