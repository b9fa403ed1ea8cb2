package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vvka-141/azsm/internal/logging"
	"github.com/vvka-141/azsm/internal/retry"
	"github.com/vvka-141/azsm/internal/ui"
	"github.com/vvka-141/azsm/pkg/azsm"
)

// AdminPasswordEnv supplies the administrator password for server create
// non-interactively. Passwords are never accepted as flags; flags end up in
// shell history and process listings.
const AdminPasswordEnv = "AZSM_ADMIN_PASSWORD"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage SQL servers (get, list, create, delete)",
}

type serverFlagValues struct {
	resourceGroup string
	name          string
	location      string
	adminUser     string
	version       string
	force         bool
}

var serverFlags serverFlagValues

var serverGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one server",
	Example: `  azsm server get -g rg-prod -n sql-prod-01
  azsm server get -g rg-prod -n sql-prod-01 --verbose`,
	RunE: runServerGet,
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers in a resource group",
	Example: `  azsm server list -g rg-prod`,
	RunE:    runServerList,
}

var serverCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create or update a server",
	Long: `Create or update a SQL server keyed by resource group and name.

The administrator password is read from ` + AdminPasswordEnv + ` or prompted
for on a terminal; it is never accepted as a flag.`,
	Example: `  azsm server create -g rg-prod -n sql-prod-01 \
    --location westeurope --admin-user sqladmin --server-version 12.0`,
	RunE: runServerCreate,
}

var serverDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a server",
	Long: `Delete starts the remote deletion and returns without awaiting it.

Deletion is confirmed interactively by typing the server name, or after a
countdown with --force.`,
	Example: `  azsm server delete -g rg-prod -n sql-old-01
  azsm server delete -g rg-prod -n sql-old-01 --force`,
	RunE: runServerDelete,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverGetCmd, serverListCmd, serverCreateCmd, serverDeleteCmd)

	serverCmd.PersistentFlags().StringVarP(&serverFlags.resourceGroup, "resource-group", "g", "",
		"Resource group containing the server (or AZSM_RESOURCE_GROUP / azsm.yaml)")

	for _, cmd := range []*cobra.Command{serverGetCmd, serverCreateCmd, serverDeleteCmd} {
		cmd.Flags().StringVarP(&serverFlags.name, "name", "n", "", "Server name")
		_ = cmd.MarkFlagRequired("name")
	}

	serverCreateCmd.Flags().StringVar(&serverFlags.location, "location", "", "Azure region, e.g. westeurope")
	serverCreateCmd.Flags().StringVar(&serverFlags.adminUser, "admin-user", "", "Administrator login name")
	serverCreateCmd.Flags().StringVar(&serverFlags.version, "server-version", "", "SQL server version, e.g. 12.0")
	_ = serverCreateCmd.MarkFlagRequired("location")

	serverDeleteCmd.Flags().BoolVar(&serverFlags.force, "force", false,
		"Skip interactive confirmation (countdown instead)")
}

// resolveResourceGroup falls back to config when -g is not given.
func resolveResourceGroup(s settings) (string, error) {
	rg := serverFlags.resourceGroup
	if rg == "" {
		rg = s.ResourceGroup
	}
	if rg == "" {
		return "", fmt.Errorf("resource group is required (-g or azsm.yaml): %w", azsm.ErrInvalidConfig)
	}
	return rg, nil
}

// newRetryExecutor builds the caller-side executor for idempotent reads and
// upserts. The adapter itself never retries.
func newRetryExecutor(logger azsm.Logger) *retry.Executor {
	return retry.NewARMExecutor().WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("transient management-plane failure (attempt %d, retrying in %v): %v",
			attempt+1, delay, err)
	})
}

func runServerGet(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	rg, err := resolveResourceGroup(s)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(s, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var server *azsm.Server
	err = newRetryExecutor(logger).Execute(ctx, func(ctx context.Context) error {
		server, err = adapter.Get(ctx, rg, serverFlags.name)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Print(renderServer(server))
	return nil
}

func runServerList(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	rg, err := resolveResourceGroup(s)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(s, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var servers []*azsm.Server
	err = newRetryExecutor(logger).Execute(ctx, func(ctx context.Context) error {
		servers, err = adapter.List(ctx, rg)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Print(renderServerList(servers))
	return nil
}

func runServerCreate(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	rg, err := resolveResourceGroup(s)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(s, logger)
	if err != nil {
		return err
	}

	password, err := readAdminPassword(serverFlags.adminUser)
	if err != nil {
		return err
	}
	if password != nil {
		defer password.Destroy()
	}

	server := &azsm.Server{
		ResourceGroup: rg,
		Name:          serverFlags.name,
		Version:       serverFlags.version,
		AdminUser:     serverFlags.adminUser,
		AdminPassword: password,
		Location:      serverFlags.location,
	}

	ctx, cancel := signalContext()
	defer cancel()

	var result *azsm.Server
	err = newRetryExecutor(logger).Execute(ctx, func(ctx context.Context) error {
		result, err = adapter.Upsert(ctx, server)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("server %s/%s is %s", result.ResourceGroup, result.Name, result.State)
	fmt.Print(renderServer(result))
	return nil
}

func runServerDelete(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	s, err := resolveSettings(globalFlags)
	if err != nil {
		return err
	}
	rg, err := resolveResourceGroup(s)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(s, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var approver azsm.Approver
	if serverFlags.force {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover()
	}

	approved, err := approver.RequestApproval(ctx, serverFlags.name)
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("deletion of %s/%s: %w", rg, serverFlags.name, azsm.ErrApprovalDenied)
	}

	// Fire-and-forget: no retry and no polling.
	if err := adapter.Delete(ctx, rg, serverFlags.name); err != nil {
		return err
	}
	logger.Info("deletion of server %s/%s started", rg, serverFlags.name)
	return nil
}

// readAdminPassword reads the administrator password from the environment
// or, on a terminal, via a hidden prompt. Returns nil when no administrator
// login was requested and nothing was supplied.
func readAdminPassword(adminUser string) (*azsm.Secret, error) {
	if value, ok := os.LookupEnv(AdminPasswordEnv); ok {
		return azsm.NewSecret(value), nil
	}
	if adminUser == "" {
		return nil, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("administrator password required: set %s or run on a terminal: %w",
			AdminPasswordEnv, azsm.ErrInvalidConfig)
	}

	fmt.Fprintf(os.Stderr, "Administrator password for %s: ", adminUser)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	secret := azsm.NewSecret(string(raw))
	for i := range raw {
		raw[i] = 0
	}
	return secret, nil
}
