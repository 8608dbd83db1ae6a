package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/spf13/cobra"
)

var (
	proposalText     string
	proposalEndBlock uint64
	proposalDuration uint64
)

var govCmd = &cobra.Command{
	Use:     "gov",
	Aliases: []string{"governance"},
	Short:   "Create and vote on XMRT governance proposals",
}

var govProposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Open a proposal",
	Long: `Open a governance proposal. Voting closes at --end-block, or
--blocks after the current head when --end-block is not given.`,
	Example: `  cashdapp gov propose --description "Lower the on-ramp fee" --blocks 50000`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		head, err := a.client.BlockNumber(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading block number: %w", err)
		}
		end := proposalEndBlock
		if end == 0 {
			end = head + proposalDuration
		}
		return a.submit(cmd, "Create Proposal", a.preview(
			[2]string{"Description", proposalText},
			[2]string{"Current block", strconv.FormatUint(head, 10)},
			[2]string{"Voting ends", strconv.FormatUint(end, 10)},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewProposal(acts, a.notifier)
			p.Set(proposalText, end)
			return p.Submit(ctx, head)
		})
	},
}

var govVoteCmd = &cobra.Command{
	Use:     "vote <proposal-id> <for|against>",
	Short:   "Vote on a proposal",
	Example: `  cashdapp gov vote 7 for`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid proposal id %q", args[0])
		}
		support, err := parseSupport(args[1])
		if err != nil {
			return err
		}
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Cast Vote", a.preview(
			[2]string{"Proposal", "#" + args[0]},
			[2]string{"Vote", args[1]},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewVote(acts, a.notifier)
			p.Set(id, support)
			return p.Submit(ctx)
		})
	},
}

// parseSupport reads a vote direction.
func parseSupport(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "for", "yes", "y", "true":
		return true, nil
	case "against", "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid vote %q (want for|against)", s)
}

func init() {
	govProposeCmd.Flags().StringVar(&proposalText, "description", "", "proposal text")
	govProposeCmd.Flags().Uint64Var(&proposalEndBlock, "end-block", 0, "block at which voting closes")
	govProposeCmd.Flags().Uint64Var(&proposalDuration, "blocks", 40_320, "voting period in blocks when --end-block is not set")
	govProposeCmd.MarkFlagsMutuallyExclusive("end-block", "blocks")
	addWaitFlag(govProposeCmd)

	addWaitFlag(govVoteCmd)

	govCmd.AddCommand(govProposeCmd, govVoteCmd)
}
