package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "azsm",
	Short: "Azure SQL server management with key-store-backed credentials",
	Long: `azsm manages Azure SQL servers through the management plane and
authenticates as a confidential client whose secret never reaches the
command line: secrets live in a key store (an env-format secrets file or
Azure Key Vault) and are exchanged for OAuth tokens at the moment of use.

Configuration is read from azsm.yaml in the working directory, overridden
by AZSM_* environment variables, overridden by flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - No secret found for the client/tenant pair
  12 - Identity provider rejected the token exchange
  13 - User denied delete approval
  14 - Management-plane call failed`,
	SilenceUsage: true,
}

// globalFlagValues are shared identity/management flags, resolved against
// azsm.yaml and AZSM_* environment variables.
type globalFlagValues struct {
	tenantID       string
	clientID       string
	subscriptionID string
	secretsFile    string
	keyVaultURL    string
	cloudName      string
}

var globalFlags globalFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for azsm")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&globalFlags.tenantID, "tenant", "",
		"Entra ID tenant the client secret belongs to (or AZSM_TENANT_ID / azsm.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.clientID, "client-id", "",
		"Application (client) ID used for the confidential-client flow")
	rootCmd.PersistentFlags().StringVar(&globalFlags.subscriptionID, "subscription", "",
		"Azure subscription containing the managed servers")
	rootCmd.PersistentFlags().StringVar(&globalFlags.secretsFile, "secrets-file", "",
		"Path to the env-format secrets file (default .azsm.secrets)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.keyVaultURL, "key-vault", "",
		"Key Vault URL to read client secrets from (overrides --secrets-file)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.cloudName, "cloud", "",
		"Azure environment: public (default), usgovernment or china")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
