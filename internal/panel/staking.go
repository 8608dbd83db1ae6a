package panel

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// Staking tiers: tier n locks for n*30 days.
const (
	MinTier     = 1
	MaxTier     = 3
	DefaultTier = MinTier
)

// Stake is the stake tab.
type Stake struct {
	base
	actions Actions
	Amount  AmountField
	tier    int
}

// NewStake creates a stake form on the default tier.
func NewStake(a Actions, n notify.Notifier) *Stake {
	return &Stake{base: newBase(n), actions: a, tier: DefaultTier}
}

// SetTier selects a tier. Out-of-range values are stored and rejected on
// submit.
func (p *Stake) SetTier(tier int) { p.tier = tier }

// Tier returns the selected tier.
func (p *Stake) Tier() int { return p.tier }

// Submit stakes Amount in the selected tier.
func (p *Stake) Submit(ctx context.Context) (string, error) {
	if err := p.withinBalance(p.Amount.Value()); err != nil {
		return "", err
	}
	if p.tier < MinTier || p.tier > MaxTier {
		return "", p.reject(TitleInvalidTier, fmt.Sprintf("Please choose a tier between %d and %d", MinTier, MaxTier))
	}
	hash, err := p.actions.Stake(ctx, p.Amount.Value(), p.tier)
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	return hash, nil
}

// Unstake is the unstake tab. The staked position lives in the contract and
// is not readable here, so only positivity is checked; the contract rejects
// over-withdrawal.
type Unstake struct {
	base
	actions Actions
	Amount  AmountField
}

// NewUnstake creates an unstake form.
func NewUnstake(a Actions, n notify.Notifier) *Unstake {
	return &Unstake{base: newBase(n), actions: a}
}

// Submit unstakes Amount.
func (p *Unstake) Submit(ctx context.Context) (string, error) {
	if err := p.positive(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.Unstake(ctx, p.Amount.Value())
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	return hash, nil
}

// Reward is the rewards tab. It has no inputs.
type Reward struct {
	base
	actions Actions
}

// NewReward creates a reward claim form.
func NewReward(a Actions, n notify.Notifier) *Reward {
	return &Reward{base: newBase(n), actions: a}
}

// Submit claims accrued rewards.
func (p *Reward) Submit(ctx context.Context) (string, error) {
	return p.actions.ClaimReward(ctx)
}
