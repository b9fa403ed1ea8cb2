package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vvka-141/azsm/internal/keystore"
	"github.com/vvka-141/azsm/internal/logging"
	"github.com/vvka-141/azsm/pkg/azsm"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage client secrets in the env-file key store",
}

var secretSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a client secret for the configured client/tenant pair",
	Long: `Store a client secret in the env-format secrets file. The secret is
read from a hidden terminal prompt and never appears on the command line.

Secrets stored in Key Vault are managed through Azure tooling; this
command only writes the local secrets file.`,
	RunE: runSecretSet,
}

func init() {
	secretCmd.AddCommand(secretSetCmd)
	rootCmd.AddCommand(secretCmd)
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	if s.TenantID == "" || s.ClientID == "" {
		return fmt.Errorf("tenant and client ID are required: set --tenant and --client-id, %s: %w",
			"AZSM_TENANT_ID/AZSM_CLIENT_ID or azsm.yaml", azsm.ErrInvalidConfig)
	}

	secret, err := promptSecret(s.ClientID)
	if err != nil {
		return err
	}
	defer secret.Destroy()

	path := s.SecretsFile
	if path == "" {
		path = keystore.DefaultSecretsFile
	}
	store := keystore.NewEnvFile(path)
	err = secret.Expose(func(plain string) error {
		return store.Store(s.ClientID, s.TenantID, plain)
	})
	if err != nil {
		return err
	}

	logger.Info("stored secret for client %s in %s", s.ClientID, path)
	return nil
}

// promptSecret reads the secret twice from a hidden terminal prompt and
// requires both entries to match.
func promptSecret(clientID string) (*azsm.Secret, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("secret set requires a terminal: %w", azsm.ErrInvalidConfig)
	}

	fmt.Fprintf(os.Stderr, "Client secret for %s: ", clientID)
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm secret: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		zero(first)
		return nil, fmt.Errorf("failed to read secret confirmation: %w", err)
	}

	if string(first) != string(second) {
		zero(first)
		zero(second)
		return nil, fmt.Errorf("secret entries do not match: %w", azsm.ErrInvalidConfig)
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("secret must not be empty: %w", azsm.ErrInvalidConfig)
	}

	secret := azsm.NewSecret(string(first))
	zero(first)
	zero(second)
	return secret, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
