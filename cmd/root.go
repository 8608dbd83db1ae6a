package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Mohsinsiddi/cashdapp/internal/config"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/cashdapp/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	verbose     bool
	testnet     bool
	mainnet     bool
	networkFlag string
	walletFlag  string
	rpcFlag     string
	assumeYes   bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "cashdapp", Level: log.WarnLevel})
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "cashdapp",
	Short: "XMRT wallet dashboard",
	Long: `cashdapp: terminal dashboard for the XMRT token.

  Watch your balance, wrap and unwrap Monero, ramp fiat in and out,
  transfer, stake, move funds to cold storage and vote on proposals.

Global flags --testnet and --mainnet override the configured network mode
for a single invocation. Environment variables prefixed CASHDAPP_ (also read
from a .env file in the working directory) override the config file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if testnet {
			cfg.NetworkMode = "testnet"
		}
		if mainnet {
			cfg.NetworkMode = "mainnet"
		}
		if networkFlag != "" {
			cfg.DefaultNetwork = networkFlag
		}
		if walletFlag != "" {
			cfg.DefaultWallet = walletFlag
		}
		logger.Debug("config loaded", "dir", cfg.Dir(), "network", cfg.DefaultNetwork, "mode", cfg.NetworkMode)
		if cmd.Parent() == configCmd {
			// The config commands must run even when the file is invalid so
			// it can be repaired.
			return nil
		}
		return cfg.Validate()
	},
}

// Execute runs the root command. Errors already shown to the user as a
// notification are not printed a second time.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(config.EnvPrefix + "_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.cashdapp)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&testnet, "testnet", false, "use testnet instead of mainnet")
	pf.BoolVar(&mainnet, "mainnet", false, "use mainnet instead of testnet")
	pf.StringVar(&networkFlag, "network", "", "chain to use: ethereum|arbitrum (default: config)")
	pf.StringVar(&walletFlag, "wallet", "", "wallet name (default: config)")
	pf.StringVar(&rpcFlag, "rpc", "", "RPC URL to use instead of picking one")
	pf.BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.MarkFlagsMutuallyExclusive("testnet", "mainnet")

	// Routes.
	rootCmd.AddCommand(
		dashboardCmd,
		buyCmd,
		bridgeCmd,
		settingsCmd,
		profileCmd,
	)
	// Panels.
	rootCmd.AddCommand(
		transferCmd,
		stakeCmd,
		unstakeCmd,
		rewardCmd,
		coldCmd,
		wrapCmd,
		unwrapCmd,
		onrampCmd,
		offrampCmd,
		tokenCmd,
		govCmd,
		historyCmd,
	)
	// Local state.
	rootCmd.AddCommand(walletCmd, configCmd)
}
