package keystore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// Memory is an in-process SecretStore backed by a map.
// Safe for concurrent use by multiple goroutines.
type Memory struct {
	mu      sync.RWMutex
	secrets map[memoryKey]string
}

type memoryKey struct {
	clientID string
	tenantID string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{secrets: make(map[memoryKey]string)}
}

// Put stores or replaces the secret for the (clientID, tenantID) pair.
func (m *Memory) Put(clientID, tenantID, secret string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[memoryKey{clientID, tenantID}] = secret
}

// Retrieve returns the protected secret for the pair, or an error wrapping
// azsm.ErrCredentialNotFound when no entry exists. Each call returns a fresh
// Secret owned by the caller.
func (m *Memory) Retrieve(ctx context.Context, clientID, tenantID string) (*azsm.Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	secret, ok := m.secrets[memoryKey{clientID, tenantID}]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no secret for client %q in tenant %q: %w",
			clientID, tenantID, azsm.ErrCredentialNotFound)
	}
	return azsm.NewSecret(secret), nil
}

var _ azsm.SecretStore = (*Memory)(nil)
