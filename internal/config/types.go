package config

// Config holds all cashdapp configuration.
type Config struct {
	DefaultNetwork  string              `json:"default_network"  mapstructure:"default_network"`
	DefaultWallet   string              `json:"default_wallet"   mapstructure:"default_wallet"`
	NetworkMode     string              `json:"network_mode"     mapstructure:"network_mode"`     // "mainnet" | "testnet"
	RPCAlgorithm    string              `json:"rpc_algorithm"    mapstructure:"rpc_algorithm"`    // "fastest" | "failover"
	RefreshInterval int                 `json:"refresh_interval" mapstructure:"refresh_interval"` // seconds
	ContractAddress string              `json:"contract_address" mapstructure:"contract_address"`
	CustomRPCs      map[string][]string `json:"custom_rpcs"      mapstructure:"custom_rpcs"`

	// internal: config dir path used for Save()
	configDir string
}
