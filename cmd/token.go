package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	tokenOwner   string
	tokenSpender string
	tokenTo      string
	tokenAmount  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "XMRT token reads, approvals and delegated transfers",
}

var tokenInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show token name, symbol and total supply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needNothing)
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()

		var name, symbol string
		var supply string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { name, err = a.adapter.TokenName(gctx); return })
		g.Go(func() (err error) { symbol, err = a.adapter.TokenSymbol(gctx); return })
		g.Go(func() error {
			v, err := a.adapter.TotalSupply(gctx)
			if err == nil {
				supply = units.Display(v)
			}
			return err
		})
		if err := g.Wait(); err != nil {
			return reported(err)
		}

		fmt.Fprintln(a.out, ui.KeyValueBlock("Token", [][2]string{
			{"Name", name},
			{"Symbol", symbol},
			{"Total supply", supply + " " + symbol},
			{"Contract", a.desc.Address.Hex()},
			{"Network", a.chain.Label(a.mode)},
		}))
		return nil
	},
}

var tokenAllowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Show how much a spender may move for an owner",
	Example: `  cashdapp token allowance --spender 0xSpender...
  cashdapp token allowance --owner 0xOwner... --spender 0xSpender...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spender, err := parseAddress("spender", tokenSpender)
		if err != nil {
			return err
		}
		n := needNothing
		if tokenOwner == "" {
			n = needWallet
		}
		a, err := openApp(cmd, n)
		if err != nil {
			return err
		}
		owner := a.adapter.Session().Address
		if tokenOwner != "" {
			if owner, err = parseAddress("owner", tokenOwner); err != nil {
				return err
			}
		}
		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()

		v, err := a.adapter.Allowance(ctx, owner, spender)
		if err != nil {
			return reported(err)
		}
		fmt.Fprintln(a.out, ui.KeyValueBlock("Allowance", [][2]string{
			{"Owner", owner.Hex()},
			{"Spender", spender.Hex()},
			{"Allowance", units.Display(v) + " XMRT"},
		}))
		return nil
	},
}

var tokenApproveCmd = &cobra.Command{
	Use:     "approve",
	Short:   "Allow a spender to move your XMRT",
	Example: `  cashdapp token approve --spender 0xSpender... --amount 250`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Approve Spender", a.preview(
			[2]string{"Spender", tokenSpender},
			[2]string{"Allowance", tokenAmount + " XMRT"},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewApprove(acts, a.notifier)
			p.Spender.Set(tokenSpender)
			setAmount(&p.Amount, tokenAmount)
			return p.Submit(ctx)
		})
	},
}

var tokenTransferFromCmd = &cobra.Command{
	Use:     "transfer-from",
	Short:   "Move XMRT out of an owner's allowance",
	Example: `  cashdapp token transfer-from --owner 0xOwner... --to 0xRecipient... --amount 10`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Transfer From", a.preview(
			[2]string{"Owner", tokenOwner},
			[2]string{"To", tokenTo},
			[2]string{"Amount", tokenAmount + " XMRT"},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewTransferFrom(acts, a.notifier)
			p.Owner.Set(tokenOwner)
			p.Recipient.Set(tokenTo)
			setAmount(&p.Amount, tokenAmount)
			return p.Submit(ctx)
		})
	},
}

var tokenOperatorCmd = &cobra.Command{
	Use:   "operator [address]",
	Short: "Show on/off-ramp statistics for a CashDapp operator",
	Long: `Show the cashDapps record for an operator: whether it is registered and
its lifetime fiat on-ramp, off-ramp and fee totals. Defaults to the
selected wallet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := needWallet
		if len(args) == 1 {
			n = needNothing
		}
		a, err := openApp(cmd, n)
		if err != nil {
			return err
		}
		operator := a.adapter.Session().Address
		if len(args) == 1 {
			if operator, err = parseAddress("operator", args[0]); err != nil {
				return err
			}
		}
		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()

		info, err := a.adapter.CashDapp(ctx, operator)
		if err != nil {
			return reported(err)
		}
		status := ui.Warn("not registered")
		if info.Operator != (common.Address{}) {
			status = ui.Success("registered")
		}
		fmt.Fprintln(a.out, ui.KeyValueBlock("Operator", [][2]string{
			{"Operator", operator.Hex()},
			{"Status", status},
			{"Fiat on-ramped", units.Display(info.TotalFiatOnRamped)},
			{"Fiat off-ramped", units.Display(info.TotalFiatOffRamped)},
			{"Fees collected", units.Display(info.TotalFeesCollected)},
		}))
		return nil
	},
}

// parseAddress validates a flag value as an address.
func parseAddress(what, s string) (common.Address, error) {
	if !chain.IsValidAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, s)
	}
	return common.HexToAddress(s), nil
}

func init() {
	tokenAllowanceCmd.Flags().StringVar(&tokenOwner, "owner", "", "owner address (default: selected wallet)")
	tokenAllowanceCmd.Flags().StringVar(&tokenSpender, "spender", "", "spender address")

	tokenApproveCmd.Flags().StringVar(&tokenSpender, "spender", "", "spender address")
	tokenApproveCmd.Flags().StringVar(&tokenAmount, "amount", "", "allowance in XMRT")
	addWaitFlag(tokenApproveCmd)

	tokenTransferFromCmd.Flags().StringVar(&tokenOwner, "owner", "", "address whose allowance is spent")
	tokenTransferFromCmd.Flags().StringVar(&tokenTo, "to", "", "recipient address")
	tokenTransferFromCmd.Flags().StringVar(&tokenAmount, "amount", "", "amount of XMRT")
	addWaitFlag(tokenTransferFromCmd)

	tokenCmd.AddCommand(tokenInfoCmd, tokenAllowanceCmd, tokenApproveCmd, tokenTransferFromCmd, tokenOperatorCmd)
}
