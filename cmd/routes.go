package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var dashboardOnce bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"home"},
	Short:   "Live XMRT balance for the selected wallet",
	Long: `Show the session wallet's XMRT balance, refreshed on every new block.

Press q to quit. With --once the balance is printed a single time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needWallet)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		name, err := a.adapter.TokenName(ctx)
		if err != nil {
			return reported(err)
		}
		symbol, err := a.adapter.TokenSymbol(ctx)
		if err != nil {
			return reported(err)
		}
		info := ui.DashboardInfo{
			Token:   name,
			Symbol:  symbol,
			Address: a.wallet.Address,
			Network: a.chain.Label(a.mode),
		}

		if dashboardOnce {
			bal, err := a.adapter.BalanceWei(ctx)
			if err != nil {
				return reported(err)
			}
			fmt.Fprintln(a.out, ui.KeyValueBlock(ui.Banner(), [][2]string{
				{"Token", info.Token},
				{"Wallet", info.Address},
				{"Network", info.Network},
				{"Your XMRT Balance", units.FormatFixed(bal, 4) + " " + symbol},
			}))
			return nil
		}

		interval := time.Duration(cfg.RefreshInterval) * time.Second
		return runDashboard(ctx, a.adapter, info, interval, tea.WithAltScreen())
	},
}

// runDashboard starts the balance card and a poller feeding it until the
// user quits.
func runDashboard(ctx context.Context, adapter *cashdapp.Adapter, info ui.DashboardInfo, interval time.Duration, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := ui.NewDashboard(info, opts...)
	done := make(chan error, 1)
	go func() {
		done <- adapter.WatchBalance(ctx, interval, func(u cashdapp.BalanceUpdate) {
			prog.Send(ui.BalanceMsg{Block: u.Block, Formatted: balanceText(u), Err: u.Err, At: time.Now()})
		})
	}()

	if _, err := prog.Run(); err != nil {
		return err
	}
	cancel()
	if err := <-done; err != nil {
		return fmt.Errorf("balance watcher: %w", err)
	}
	return nil
}

// balanceText is the dashboard rendering of a refresh: four decimals.
func balanceText(u cashdapp.BalanceUpdate) string {
	if u.Wei == nil {
		return ""
	}
	return units.FormatFixed(u.Wei, 4)
}

var (
	buyAmount string
	buyMethod string
)

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Request a fiat purchase of XMRT",
	Long: `Request a purchase of XMRT with a card or bank transfer.

No payment processor is connected; a valid request is acknowledged only.`,
	Example: `  cashdapp buy --amount 100 --method card`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := panel.NewBuy(notify.NewTerminal(cmd.OutOrStdout()))
		setAmount(&p.Amount, buyAmount)
		p.SetMethod(buyMethod)
		return reported(p.Submit())
	},
}

var (
	bridgeFrom   string
	bridgeTo     string
	bridgeAmount string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Request a cross-chain XMRT move",
	Long: `Request moving XMRT between supported chains (ethereum, arbitrum).

No bridge protocol is connected; a valid request is acknowledged only.`,
	Example: `  cashdapp bridge --from ethereum --to arbitrum --amount 25`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		reg := chain.NewRegistry()
		p := panel.NewBridge(reg, notify.NewTerminal(out))
		setAmount(&p.Amount, bridgeAmount)
		p.SetChains(bridgeFrom, bridgeTo)
		if err := p.Submit(); err != nil {
			return reported(err)
		}
		if amt, err := units.ParsePositive(bridgeAmount); err == nil {
			fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%s XMRT  %s → %s", units.Display(amt), bridgeFrom, bridgeTo)))
		}
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the active network, contract and RPC settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		c, err := resolveChain()
		if err != nil {
			return err
		}
		rpcs := cfg.GetRPCs(c.Name)
		custom := "(none)"
		if len(rpcs) > 0 {
			custom = fmt.Sprintf("%d custom", len(rpcs))
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Settings", [][2]string{
			{"Network", c.Label(cfg.NetworkMode)},
			{"Chain ID", fmt.Sprintf("%d", c.ID(cfg.NetworkMode))},
			{"Mode", cfg.NetworkMode},
			{"Contract", cfg.ContractAddress},
			{"RPC algorithm", cfg.RPCAlgorithm},
			{"RPCs", custom},
			{"Refresh", fmt.Sprintf("%ds", cfg.RefreshInterval)},
			{"Default wallet", orNone(cfg.DefaultWallet)},
			{"Config dir", cfg.Dir()},
		}))
		fmt.Fprintln(out, ui.Meta("Change with `cashdapp config set-*` or CASHDAPP_* environment variables."))
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the session wallet and its XMRT position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needWallet)
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()

		bal, err := a.adapter.BalanceWei(ctx)
		if err != nil {
			return reported(err)
		}
		fmt.Fprintln(a.out, ui.KeyValueBlock("Profile", [][2]string{
			{"Wallet", a.wallet.Name},
			{"Address", a.wallet.Address},
			{"Type", a.wallet.Type},
			{"Network", a.chain.Label(a.mode)},
			{"Your XMRT Balance", units.FormatFixed(bal, 4) + " XMRT"},
		}))
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardOnce, "once", false, "print the balance once and exit")

	buyCmd.Flags().StringVar(&buyAmount, "amount", "", "amount of XMRT to buy")
	buyCmd.Flags().StringVar(&buyMethod, "method", panel.PaymentCard, "payment method: card|bank")

	bridgeCmd.Flags().StringVar(&bridgeFrom, "from", "", "source chain")
	bridgeCmd.Flags().StringVar(&bridgeTo, "to", "", "destination chain")
	bridgeCmd.Flags().StringVar(&bridgeAmount, "amount", "", "amount of XMRT to bridge")
}
