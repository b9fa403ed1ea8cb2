package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// IdentityConfig holds the confidential-client identity settings.
type IdentityConfig struct {
	TenantID string `yaml:"tenant_id"`
	ClientID string `yaml:"client_id,omitempty"`

	// SecretsFile is the path to the env-format secrets file. Ignored when
	// KeyVaultURL is set.
	SecretsFile string `yaml:"secrets_file,omitempty"`

	// KeyVaultURL selects the Azure Key Vault key store when non-empty.
	KeyVaultURL string `yaml:"key_vault_url,omitempty"`
}

// ManagementConfig holds the management-plane settings.
type ManagementConfig struct {
	SubscriptionID string `yaml:"subscription_id"`
	ResourceGroup  string `yaml:"resource_group,omitempty"`
}

// ProjectConfig is the root of azsm.yaml.
type ProjectConfig struct {
	Identity   IdentityConfig   `yaml:"identity"`
	Management ManagementConfig `yaml:"management"`

	// Cloud selects the Azure environment: "public" (default),
	// "usgovernment" or "china".
	Cloud string `yaml:"cloud,omitempty"`
}

const ConfigFileName = "azsm.yaml"

// Environment variable overrides, applied after the file is read.
const (
	EnvTenantID       = "AZSM_TENANT_ID"
	EnvClientID       = "AZSM_CLIENT_ID"
	EnvSecretsFile    = "AZSM_SECRETS_FILE"
	EnvKeyVaultURL    = "AZSM_KEY_VAULT_URL"
	EnvSubscriptionID = "AZSM_SUBSCRIPTION_ID"
	EnvResourceGroup  = "AZSM_RESOURCE_GROUP"
	EnvCloud          = "AZSM_CLOUD"
)

// Load reads azsm.yaml from dir and applies environment overrides.
// Returns ErrConfigNotFound when the file does not exist; environment
// overrides still apply to the zero config in that case via LoadOrDefault.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty
// config, so environment variables alone can configure the tool.
func LoadOrDefault(dir string) (*ProjectConfig, error) {
	cfg, err := Load(dir)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			cfg = &ProjectConfig{}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *ProjectConfig) applyEnv() {
	setFromEnv(&c.Identity.TenantID, EnvTenantID)
	setFromEnv(&c.Identity.ClientID, EnvClientID)
	setFromEnv(&c.Identity.SecretsFile, EnvSecretsFile)
	setFromEnv(&c.Identity.KeyVaultURL, EnvKeyVaultURL)
	setFromEnv(&c.Management.SubscriptionID, EnvSubscriptionID)
	setFromEnv(&c.Management.ResourceGroup, EnvResourceGroup)
	setFromEnv(&c.Cloud, EnvCloud)
}

func setFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}
