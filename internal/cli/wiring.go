package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/vvka-141/azsm/internal/config"
	"github.com/vvka-141/azsm/internal/identity"
	"github.com/vvka-141/azsm/internal/keystore"
	"github.com/vvka-141/azsm/internal/mgmt"
	"github.com/vvka-141/azsm/pkg/azsm"
)

// settings is the fully resolved runtime configuration of one invocation.
// Precedence: flag > AZSM_* environment variable > azsm.yaml.
type settings struct {
	TenantID       string
	ClientID       string
	SubscriptionID string
	SecretsFile    string
	KeyVaultURL    string
	ResourceGroup  string
	Cloud          string
}

// cloudConfiguration maps the configured cloud name to the SDK environment.
func cloudConfiguration(name string) (cloud.Configuration, error) {
	switch name {
	case "", "public":
		return cloud.AzurePublic, nil
	case "usgovernment", "government":
		return cloud.AzureGovernment, nil
	case "china":
		return cloud.AzureChina, nil
	default:
		return cloud.Configuration{}, fmt.Errorf(
			"unknown cloud %q (expected public, usgovernment or china): %w",
			name, azsm.ErrInvalidConfig)
	}
}

// resolveSettings loads azsm.yaml from the working directory (if present)
// and applies flag overrides.
func resolveSettings(flags globalFlagValues) (settings, error) {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return settings{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return mergeSettings(cfg, flags), nil
}

// mergeSettings applies flag overrides onto the loaded config.
func mergeSettings(cfg *config.ProjectConfig, flags globalFlagValues) settings {
	s := settings{
		TenantID:       cfg.Identity.TenantID,
		ClientID:       cfg.Identity.ClientID,
		SubscriptionID: cfg.Management.SubscriptionID,
		SecretsFile:    cfg.Identity.SecretsFile,
		KeyVaultURL:    cfg.Identity.KeyVaultURL,
		ResourceGroup:  cfg.Management.ResourceGroup,
		Cloud:          cfg.Cloud,
	}
	if flags.tenantID != "" {
		s.TenantID = flags.tenantID
	}
	if flags.clientID != "" {
		s.ClientID = flags.clientID
	}
	if flags.subscriptionID != "" {
		s.SubscriptionID = flags.subscriptionID
	}
	if flags.secretsFile != "" {
		s.SecretsFile = flags.secretsFile
	}
	if flags.keyVaultURL != "" {
		s.KeyVaultURL = flags.keyVaultURL
	}
	if flags.cloudName != "" {
		s.Cloud = flags.cloudName
	}
	return s
}

// newSecretStore selects the key store: Key Vault when configured, the
// env-format secrets file otherwise. Vault access itself authenticates via
// the default Azure credential chain (env vars, managed identity, CLI).
func newSecretStore(s settings) (azsm.SecretStore, error) {
	if s.KeyVaultURL != "" {
		cloudCfg, err := cloudConfiguration(s.Cloud)
		if err != nil {
			return nil, err
		}
		cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
			ClientOptions: azcore.ClientOptions{Cloud: cloudCfg},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
		}
		return keystore.NewKeyVault(s.KeyVaultURL, cred)
	}
	return keystore.NewEnvFile(s.SecretsFile), nil
}

// newProvider wires the key store into a credential provider for the
// resolved tenant.
func newProvider(s settings, logger azsm.Logger) (*identity.Provider, error) {
	if s.TenantID == "" {
		return nil, fmt.Errorf("tenant is required (--tenant, %s, or azsm.yaml): %w",
			config.EnvTenantID, azsm.ErrInvalidConfig)
	}

	cloudCfg, err := cloudConfiguration(s.Cloud)
	if err != nil {
		return nil, err
	}
	store, err := newSecretStore(s)
	if err != nil {
		return nil, err
	}
	acquirer := identity.NewEntraAcquirerWithOptions(&azidentity.ClientSecretCredentialOptions{
		ClientOptions: azcore.ClientOptions{Cloud: cloudCfg},
	})
	return identity.NewProvider(s.TenantID,
		identity.WithStore(store),
		identity.WithAcquirer(acquirer),
		identity.WithLogger(logger),
	)
}

// newAdapter builds the management-plane adapter. ARM requests authenticate
// through the same key-store-backed flow as the token command.
func newAdapter(s settings, logger azsm.Logger) (*mgmt.Adapter, error) {
	if s.SubscriptionID == "" {
		return nil, fmt.Errorf("subscription is required (--subscription, %s, or azsm.yaml): %w",
			config.EnvSubscriptionID, azsm.ErrInvalidConfig)
	}
	if s.ClientID == "" {
		return nil, fmt.Errorf("client ID is required (--client-id, %s, or azsm.yaml): %w",
			config.EnvClientID, azsm.ErrInvalidConfig)
	}

	cloudCfg, err := cloudConfiguration(s.Cloud)
	if err != nil {
		return nil, err
	}
	provider, err := newProvider(s, logger)
	if err != nil {
		return nil, err
	}
	cred, err := identity.NewCredential(provider, s.ClientID)
	if err != nil {
		return nil, err
	}
	factory, err := mgmt.NewARMClientFactory(s.SubscriptionID, cred, &arm.ClientOptions{
		ClientOptions: azcore.ClientOptions{Cloud: cloudCfg},
	})
	if err != nil {
		return nil, err
	}
	return mgmt.NewAdapter(factory, logger), nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
