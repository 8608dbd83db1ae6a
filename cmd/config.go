package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/config"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the config file",
}

// editConfig applies fn to the on-disk config, validates and saves it, and
// reloads the effective config. Environment and flag overrides are never
// written back.
func editConfig(fn func(c *config.Config) error) error {
	file, err := config.LoadFile(cfg.Dir())
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return err
	}
	if err := file.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Debug("config saved", "dir", file.Dir())
	return nil
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetNetworkCmd = &cobra.Command{
	Use:   "set-network <chain>",
	Short: "Set the chain to connect to (ethereum, arbitrum)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown chain %q: %w", args[0], err)
		}
		if err := editConfig(func(f *config.Config) error { f.DefaultNetwork = c.Name; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Network set to %s", c.DisplayName)))
		return nil
	},
}

var configSetModeCmd = &cobra.Command{
	Use:       "set-mode <mainnet|testnet>",
	Short:     "Set the network mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Modes,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editConfig(func(f *config.Config) error { f.NetworkMode = args[0]; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Network mode set to %s", args[0])))
		return nil
	},
}

var configSetContractCmd = &cobra.Command{
	Use:   "set-contract <address>",
	Short: "Set the XMRT contract address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !chain.IsValidAddress(args[0]) {
			return fmt.Errorf("invalid contract address %q", args[0])
		}
		if err := editConfig(func(f *config.Config) error { f.ContractAddress = args[0]; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Contract set to "+ui.Addr(args[0])))
		return nil
	},
}

var configSetRefreshCmd = &cobra.Command{
	Use:   "set-refresh <seconds>",
	Short: "Set how often the dashboard polls for new blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid interval %q", args[0])
		}
		if err := editConfig(func(f *config.Config) error { f.RefreshInterval = n; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Refresh interval set to %ds", n)))
		return nil
	},
}

var configSetAlgorithmCmd = &cobra.Command{
	Use:       "set-algorithm <fastest|failover>",
	Short:     "Set how an RPC endpoint is picked",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Algorithms,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editConfig(func(f *config.Config) error { f.RPCAlgorithm = args[0]; return nil }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC algorithm set to %s", args[0])))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <chain> <url>",
	Short: "Add a custom RPC for a chain",
	Long: `Add a custom RPC endpoint for a chain. Custom endpoints are tried
alongside the built-in ones for the current network mode.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chain.NewRegistry().GetByName(args[0])
		if err != nil {
			return fmt.Errorf("unknown chain %q: %w", args[0], err)
		}
		if err := editConfig(func(f *config.Config) error { return f.AddRPC(c.Name, args[1]) }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC added for %s: %s", c.DisplayName, args[1])))
		return nil
	},
}

var configRemoveRPCCmd = &cobra.Command{
	Use:   "remove-rpc <chain> <url>",
	Short: "Remove a custom RPC",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editConfig(func(f *config.Config) error { return f.RemoveRPC(args[0], args[1]) }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("RPC removed for %s: %s", args[0], args[1])))
		return nil
	},
}

func init() {
	configCmd.AddCommand(
		configListCmd,
		configSetNetworkCmd,
		configSetModeCmd,
		configSetContractCmd,
		configSetRefreshCmd,
		configSetAlgorithmCmd,
		configSetRPCCmd,
		configRemoveRPCCmd,
	)
}
