package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/spf13/cobra"
)

var (
	stakeAmount   string
	stakeTier     int
	unstakeAmount string
)

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Stake XMRT on a lock tier",
	Long: `Stake XMRT for a fixed lock period.

  Tier 1   30 days
  Tier 2   60 days
  Tier 3   90 days`,
	Example: `  cashdapp stake --amount 100 --tier 2`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Stake XMRT", a.preview(
			[2]string{"Amount", stakeAmount + " XMRT"},
			[2]string{"Tier", fmt.Sprintf("%d (%d days)", stakeTier, cashdapp.TierDays(stakeTier))},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewStake(acts, a.notifier)
			if _, err := a.loadBalance(ctx, p); err != nil {
				return "", err
			}
			setAmount(&p.Amount, stakeAmount)
			p.SetTier(stakeTier)
			return p.Submit(ctx)
		})
	},
}

var unstakeCmd = &cobra.Command{
	Use:     "unstake",
	Short:   "Withdraw staked XMRT",
	Example: `  cashdapp unstake --amount 50`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Unstake XMRT", a.preview(
			[2]string{"Amount", unstakeAmount + " XMRT"},
		), func(ctx context.Context, acts panel.Actions) (string, error) {
			p := panel.NewUnstake(acts, a.notifier)
			setAmount(&p.Amount, unstakeAmount)
			return p.Submit(ctx)
		})
	},
}

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Claim accrued staking rewards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, needSigner)
		if err != nil {
			return err
		}
		return a.submit(cmd, "Claim Rewards", a.preview(), func(ctx context.Context, acts panel.Actions) (string, error) {
			return panel.NewReward(acts, a.notifier).Submit(ctx)
		})
	},
}

func init() {
	stakeCmd.Flags().StringVar(&stakeAmount, "amount", "", "amount of XMRT to stake")
	stakeCmd.Flags().IntVar(&stakeTier, "tier", panel.DefaultTier, "lock tier 1-3")
	addWaitFlag(stakeCmd)

	unstakeCmd.Flags().StringVar(&unstakeAmount, "amount", "", "amount of XMRT to unstake")
	addWaitFlag(unstakeCmd)

	addWaitFlag(rewardCmd)
}
