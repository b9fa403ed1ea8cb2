package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/azsm/internal/logging"
	"github.com/vvka-141/azsm/pkg/azsm"
)

type tokenFlagValues struct {
	audience string
	scopes   []string
}

var tokenFlags tokenFlagValues

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Acquire an access token for the configured client",
	Long: `Acquire an OAuth access token by exchanging the stored client secret
with Entra ID. The token is printed to stdout for scripting; expiry
information goes to stderr.

The client secret is looked up in the key store under the client/tenant
pair and is destroyed as soon as the exchange completes.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.audience, "audience", "",
		"Resource the token is requested for, e.g. https://database.windows.net")
	tokenCmd.Flags().StringArrayVar(&tokenFlags.scopes, "scope", nil,
		"Explicit OAuth scope (repeatable); defaults to <audience>/.default")
	_ = tokenCmd.MarkFlagRequired("audience")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	if s.ClientID == "" {
		return fmt.Errorf("client ID is required: set --client-id, %s or azsm.yaml: %w",
			"AZSM_CLIENT_ID", azsm.ErrInvalidConfig)
	}
	provider, err := newProvider(s, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	token, err := provider.Authenticate(ctx, s.ClientID, tokenFlags.audience, tokenFlags.scopes...)
	if err != nil {
		return err
	}

	// Token to stdout for pipeline consumption, metadata to stderr.
	fmt.Println(token.Token)
	fmt.Fprintf(os.Stderr, "expires: %s (in %s)\n",
		token.ExpiresOn.Format(time.RFC3339), time.Until(token.ExpiresOn).Round(time.Second))
	return nil
}
