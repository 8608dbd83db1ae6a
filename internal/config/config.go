package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	defaultNetwork   = "ethereum"
	defaultMode      = "mainnet"
	defaultAlgorithm = "fastest"
	defaultInterval  = 12
	defaultContract  = "0x0000000000000000000000000000000000000000"

	configFile  = "config.json"
	walletsFile = "wallets.json"

	// EnvPrefix prefixes every environment override, e.g. CASHDAPP_NETWORK.
	EnvPrefix = "CASHDAPP"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Modes and algorithms accepted by Validate.
var (
	Modes      = []string{"mainnet", "testnet"}
	Algorithms = []string{"fastest", "failover"}
)

// Load reads config.json from dir (or defaults) and applies CASHDAPP_*
// environment overrides on top. dir defaults to $CASHDAPP_CONFIG_DIR, then
// ~/.cashdapp.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(dir)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg, envViper())
	return cfg, nil
}

// LoadFile is Load without environment overrides. Commands that modify and
// Save the config use it so overrides never get persisted.
func LoadFile(dir string) (*Config, error) {
	dir, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Validate checks enumerated fields and the contract address.
func (c *Config) Validate() error {
	if !slices.Contains(Modes, c.NetworkMode) {
		return fmt.Errorf("%w: network_mode %q (want one of %s)", ErrInvalidConfig, c.NetworkMode, strings.Join(Modes, ", "))
	}
	if !slices.Contains(Algorithms, c.RPCAlgorithm) {
		return fmt.Errorf("%w: rpc_algorithm %q (want one of %s)", ErrInvalidConfig, c.RPCAlgorithm, strings.Join(Algorithms, ", "))
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive, got %d", ErrInvalidConfig, c.RefreshInterval)
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("%w: contract_address %q is not an address", ErrInvalidConfig, c.ContractAddress)
	}
	return nil
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is where wallet metadata is stored.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// --- helpers ---

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := envViper().GetString("config_dir"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, ".cashdapp"), nil
}

func envViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// applyEnv overlays CASHDAPP_NETWORK, CASHDAPP_WALLET, CASHDAPP_NETWORK_MODE,
// CASHDAPP_RPC_ALGORITHM, CASHDAPP_REFRESH_INTERVAL and
// CASHDAPP_CONTRACT_ADDRESS.
func applyEnv(c *Config, v *viper.Viper) {
	if s := v.GetString("network"); s != "" {
		c.DefaultNetwork = s
	}
	if s := v.GetString("wallet"); s != "" {
		c.DefaultWallet = s
	}
	if s := v.GetString("network_mode"); s != "" {
		c.NetworkMode = s
	}
	if s := v.GetString("rpc_algorithm"); s != "" {
		c.RPCAlgorithm = s
	}
	if n := v.GetInt("refresh_interval"); n > 0 {
		c.RefreshInterval = n
	}
	if s := v.GetString("contract_address"); s != "" {
		c.ContractAddress = s
	}
}

func defaults(dir string) *Config {
	return &Config{
		DefaultNetwork:  defaultNetwork,
		NetworkMode:     defaultMode,
		RPCAlgorithm:    defaultAlgorithm,
		RefreshInterval: defaultInterval,
		ContractAddress: defaultContract,
		CustomRPCs:      make(map[string][]string),
		configDir:       dir,
	}
}
