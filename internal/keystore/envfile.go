package keystore

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// DefaultSecretsFile is the secrets file name looked up in the working
// directory when no explicit path is configured.
const DefaultSecretsFile = ".azsm.secrets"

// EnvFile is a SecretStore backed by a godotenv-format file. Entries are
// keyed AZSM_SECRET_<CLIENT>_<TENANT> (see EnvKey).
//
// The file is re-read on every Retrieve, so external edits take effect
// without restarting. Writes rewrite the whole file, which is how godotenv
// persists maps; concurrent writers of the same file are not coordinated.
type EnvFile struct {
	path string
}

// NewEnvFile creates a store reading from the given file path.
func NewEnvFile(path string) *EnvFile {
	if path == "" {
		path = DefaultSecretsFile
	}
	return &EnvFile{path: path}
}

// Path returns the backing file path.
func (s *EnvFile) Path() string {
	return s.path
}

// Retrieve returns the protected secret for the pair, or an error wrapping
// azsm.ErrCredentialNotFound when the file or the entry is missing.
func (s *EnvFile) Retrieve(ctx context.Context, clientID, tenantID string) (*azsm.Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := godotenv.Read(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secrets file %s does not exist: %w", s.path, azsm.ErrCredentialNotFound)
		}
		return nil, fmt.Errorf("failed to read secrets file %s: %w", s.path, err)
	}

	key := EnvKey(clientID, tenantID)
	secret, ok := entries[key]
	if !ok {
		return nil, fmt.Errorf("no secret for client %q in tenant %q: %w",
			clientID, tenantID, azsm.ErrCredentialNotFound)
	}
	return azsm.NewSecret(secret), nil
}

// Store persists the secret for the (clientID, tenantID) pair, creating the
// file with owner-only permissions when it does not exist yet.
func (s *EnvFile) Store(clientID, tenantID, secret string) error {
	entries, err := godotenv.Read(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read secrets file %s: %w", s.path, err)
		}
		entries = make(map[string]string)
	}

	entries[EnvKey(clientID, tenantID)] = secret

	content, err := godotenv.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize secrets file %s: %w", s.path, err)
	}

	// Write with restricted permissions from the start; godotenv.Write would
	// create the file world-readable before any chmod could take effect.
	if err := os.WriteFile(s.path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write secrets file %s: %w", s.path, err)
	}
	return nil
}

var _ azsm.SecretStore = (*EnvFile)(nil)
