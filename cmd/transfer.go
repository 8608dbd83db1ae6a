package cmd

import (
	"context"

	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/spf13/cobra"
)

var (
	transferTo     string
	transferAmount string
)

var transferCmd = &cobra.Command{
	Use:     "transfer",
	Aliases: []string{"send"},
	Short:   "Send XMRT to another address",
	Example: `  cashdapp transfer --to 0x000000000000000000000000000000000000dEaD --amount 10
  cashdapp transfer --to 0xAbC... --amount 0.5 --wait`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Transfer XMRT", a.preview(
			[2]string{"To", transferTo},
			[2]string{"Amount", transferAmount + " XMRT"},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewTransfer(acts, a.notifier)
			if _, err := a.loadBalance(ctx, p); err != nil {
				return "", err
			}
			p.Recipient.Set(transferTo)
			setAmount(&p.Amount, transferAmount)
			return p.Submit(ctx)
		})
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferTo, "to", "", "recipient address")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "amount of XMRT")
	addWaitFlag(transferCmd)
}
