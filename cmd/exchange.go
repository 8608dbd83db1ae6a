package cmd

import (
	"context"
	"math/big"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/spf13/cobra"
)

var exchangeAmount string

// exchangePanel is what wrap, unwrap and the ramps have in common.
type exchangePanel interface {
	SetBalance(wei *big.Int)
	Submit(ctx context.Context) (string, error)
}

// exchange describes one of the single-amount conversion commands.
type exchange struct {
	title   string
	unit    string // unit of the entered amount
	feeBps  int64  // 0 when no fee is shown
	feeUnit string
	capped  bool // balance must be loaded for the over-balance check
	build   func(acts panel.Actions, n notify.Notifier, amount string) exchangePanel
}

func (e exchange) run(cmd *cobra.Command) error {
	a, err := openApp(cmd, needSigner)
	if err != nil {
		return err
	}
	rows := [][2]string{{"Amount", exchangeAmount + " " + e.unit}}
	if e.feeBps > 0 {
		fee := panel.Quote(exchangeAmount, e.feeBps)
		if fee == "" {
			fee = "-"
		} else {
			fee += " " + e.feeUnit
		}
		rows = append(rows, [2]string{"Fee (" + units.BpsPercent(e.feeBps) + ")", fee})
	}
	return a.submit(cmd, e.title, a.preview(rows...), func(ctx context.Context, acts panel.Actions) (string, error) {
		p := e.build(acts, a.notifier, exchangeAmount)
		if e.capped {
			if _, err := a.loadBalance(ctx, p); err != nil {
				return "", err
			}
		}
		return p.Submit(ctx)
	})
}

func exchangeCmd(use, short, long, example string, e exchange) *cobra.Command {
	c := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd)
		},
	}
	c.Flags().StringVar(&exchangeAmount, "amount", "", "amount in "+e.unit)
	addWaitFlag(c)
	return c
}

var wrapCmd = exchangeCmd("wrap", "Wrap XMR into XMRT",
	`Wrap XMR into XMRT. A 0.1% fee is attached to the call as value.

The amount is in XMR and is not capped by your XMRT balance.`,
	`  cashdapp wrap --amount 5`,
	exchange{
		title: "Wrap XMR", unit: "XMR", feeBps: units.WrapFeeBps, feeUnit: "ETH",
		build: func(acts panel.Actions, n notify.Notifier, amount string) exchangePanel {
			p := panel.NewWrap(acts, n)
			setAmount(&p.Amount, amount)
			return p
		},
	})

var unwrapCmd = exchangeCmd("unwrap", "Unwrap XMRT back to XMR",
	`Unwrap XMRT back to XMR. The amount may not exceed your balance.`,
	`  cashdapp unwrap --amount 5`,
	exchange{
		title: "Unwrap XMRT", unit: "XMRT", capped: true,
		build: func(acts panel.Actions, n notify.Notifier, amount string) exchangePanel {
			p := panel.NewUnwrap(acts, n)
			setAmount(&p.Amount, amount)
			return p
		},
	})

var onrampCmd = exchangeCmd("onramp", "Credit fiat as XMRT",
	`Credit a fiat amount as XMRT. A 0.5% fee is attached to the call as value.`,
	`  cashdapp onramp --amount 100`,
	exchange{
		title: "Fiat On-Ramp", unit: "USD", feeBps: units.OnRampFeeBps, feeUnit: "ETH",
		build: func(acts panel.Actions, n notify.Notifier, amount string) exchangePanel {
			p := panel.NewOnRamp(acts, n)
			setAmount(&p.Amount, amount)
			return p
		},
	})

var offrampCmd = exchangeCmd("offramp", "Cash XMRT out to fiat",
	`Cash XMRT out to fiat. The contract deducts a 0.5% fee.`,
	`  cashdapp offramp --amount 40`,
	exchange{
		title: "Fiat Off-Ramp", unit: "XMRT", feeBps: units.OffRampFeeBps, feeUnit: "XMRT", capped: true,
		build: func(acts panel.Actions, n notify.Notifier, amount string) exchangePanel {
			p := panel.NewOffRamp(acts, n)
			setAmount(&p.Amount, amount)
			return p
		},
	})
