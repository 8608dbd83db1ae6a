package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/Mohsinsiddi/cashdapp/internal/wallet"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var (
	coldTo        string
	coldAmount    string
	coldSignature string
)

var coldCmd = &cobra.Command{
	Use:   "cold",
	Short: "Move XMRT to and from cold storage",
}

var coldDepositCmd = &cobra.Command{
	Use:     "deposit",
	Short:   "Send XMRT to a cold storage address",
	Example: `  cashdapp cold deposit --to 0xCold... --amount 100`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Cold Storage Deposit", a.preview(
			[2]string{"Cold address", coldTo},
			[2]string{"Amount", coldAmount + " XMRT"},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewColdDeposit(acts, a.notifier)
			if _, err := a.loadBalance(ctx, p); err != nil {
				return "", err
			}
			p.Address.Set(coldTo)
			setAmount(&p.Amount, coldAmount)
			return p.Submit(ctx)
		})
	},
}

var coldRetrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve XMRT from cold storage",
	Long: `Retrieve XMRT from cold storage with the cold storage owner's signature.

The signature is passed to the contract as-is; produce one with
` + "`cashdapp cold sign`" + ` using the owner's wallet.`,
	Example: `  cashdapp cold retrieve --amount 100 --signature 0x...`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Cold Storage Retrieval", a.preview(
			[2]string{"Amount", coldAmount + " XMRT"},
			[2]string{"Signature", ui.TruncateAddr(coldSignature)},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewColdRetrieve(acts, a.notifier)
			setAmount(&p.Amount, coldAmount)
			p.SetSignature(coldSignature)
			return p.Submit(ctx)
		})
	},
}

var coldSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a cold storage retrieval with the selected wallet",
	Long: `Sign keccak256(token, owner, amount) with EIP-191 using the selected
wallet as the cold storage owner. Nothing is sent to the network.`,
	Example: `  cashdapp cold sign --amount 100 --wallet cold`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		amount, err := units.ParsePositive(coldAmount)
		if err != nil {
			return err
		}
		desc, err := contract.NewXMRT(cfg.ContractAddress)
		if err != nil {
			return err
		}
		mgr := newWalletManager()
		w, err := mgr.Resolve(cfg.DefaultWallet)
		if err != nil {
			return err
		}

		digest := cashdapp.RetrievalDigest(desc.Address, w.CommonAddress(), amount)
		sig, err := wallet.SignText(w, mgr.Keystore(), digest)
		if err != nil {
			return err
		}
		logger.Debug("retrieval signed", "owner", w.Address, "digest", hexutil.Encode(digest))

		fmt.Fprintln(out, ui.KeyValueBlock("Retrieval Signature", [][2]string{
			{"Owner", w.Address},
			{"Amount", units.Display(amount) + " XMRT"},
			{"Digest", hexutil.Encode(digest)},
		}))
		fmt.Fprintln(out, hexutil.Encode(sig))
		return nil
	},
}

func init() {
	coldDepositCmd.Flags().StringVar(&coldTo, "to", "", "cold storage address")
	coldDepositCmd.Flags().StringVar(&coldAmount, "amount", "", "amount of XMRT")
	addWaitFlag(coldDepositCmd)

	coldRetrieveCmd.Flags().StringVar(&coldAmount, "amount", "", "amount of XMRT")
	coldRetrieveCmd.Flags().StringVar(&coldSignature, "signature", "", "owner signature (0x hex)")
	addWaitFlag(coldRetrieveCmd)

	coldSignCmd.Flags().StringVar(&coldAmount, "amount", "", "amount of XMRT to authorise")

	coldCmd.AddCommand(coldDepositCmd, coldRetrieveCmd, coldSignCmd)
}
