package cmd

import (
	"fmt"
	"os"

	"github.com/Mohsinsiddi/cashdapp/internal/config"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	historyFrom  uint64
	historyTo    uint64
	historySpan  uint64
	historyPlain bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"txs"},
	Short:   "List XMRT transfers for the selected wallet",
	Long: `List XMRT Transfer events sent or received by the selected wallet,
newest first. By default the last 10000 blocks are scanned.

On a terminal the list is interactive: o opens the transaction in the
explorer and c copies its hash. Use --plain for a static table.`,
	Example: `  cashdapp history
  cashdapp history --blocks 50000 --plain
  cashdapp history --from 19000000 --to 19010000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needWallet)
		if err != nil {
			return err
		}

		spin := ui.NewSpinner("Scanning transfers...")
		spin.Start()
		events, err := a.adapter.History(cmd.Context(), historyFrom, historyTo, historySpan)
		spin.Stop()
		if err != nil {
			return reported(err)
		}

		rows := historyRows(events, a.wallet.CommonAddress(), a.chain.Explorer(a.mode))
		title := ui.StyleTitle.Render("XMRT transfers") + "  " + ui.Meta(a.wallet.Name+" on "+a.chain.Label(a.mode))

		if historyPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprintln(a.out, title)
			if len(rows) == 0 {
				fmt.Fprintln(a.out, ui.Meta("No transfers in range."))
				return nil
			}
			fmt.Fprint(a.out, ui.HistoryTable(rows).Render())
			return nil
		}
		return ui.RunHistory(title, rows)
	},
}

// historyRows converts decoded events into display rows, keeping their order.
func historyRows(events []contract.TransferEvent, owner common.Address, explorer string) []ui.HistoryRow {
	rows := make([]ui.HistoryRow, 0, len(events))
	for _, ev := range events {
		dir := ev.Direction(owner)
		counterparty := ev.To
		if dir == "received" {
			counterparty = ev.From
		}
		rows = append(rows, ui.HistoryRow{
			Hash:         ev.TxHash,
			ExplorerURL:  ui.TxURL(explorer, ev.TxHash),
			Direction:    dir,
			Counterparty: counterparty.Hex(),
			Amount:       units.Display(ev.Value),
			Block:        ev.Block,
		})
	}
	return rows
}

func init() {
	f := historyCmd.Flags()
	f.Uint64Var(&historyFrom, "from", 0, "first block to scan (default: --blocks before --to)")
	f.Uint64Var(&historyTo, "to", 0, "last block to scan (default: chain head)")
	f.Uint64Var(&historySpan, "blocks", config.HistoryBlockRange, "blocks to scan when --from is not set")
	f.BoolVar(&historyPlain, "plain", false, "print a static table instead of the interactive list")
}
