package cmd

import (
	"context"
	"errors"

	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/ethereum/go-ethereum/common"
)

var errCancelled = errors.New("cancelled")

// gate sits between a panel and the adapter. A panel only reaches it after
// its own checks pass, so the confirmation prompt never shows for input that
// would be rejected anyway.
type gate struct {
	actions panel.Actions
	ask     func() bool
}

var _ panel.Actions = (*gate)(nil)

func (g *gate) do(call func() (string, error)) (string, error) {
	if g.ask != nil && !g.ask() {
		return "", errCancelled
	}
	spin := ui.NewSpinner("Submitting...")
	spin.Start()
	defer spin.Stop()
	return call()
}

func (g *gate) Transfer(ctx context.Context, to common.Address, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.Transfer(ctx, to, amount) })
}

func (g *gate) TransferFrom(ctx context.Context, owner, to common.Address, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.TransferFrom(ctx, owner, to, amount) })
}

func (g *gate) Approve(ctx context.Context, spender common.Address, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.Approve(ctx, spender, amount) })
}

func (g *gate) Stake(ctx context.Context, amount string, tier int) (string, error) {
	return g.do(func() (string, error) { return g.actions.Stake(ctx, amount, tier) })
}

func (g *gate) Unstake(ctx context.Context, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.Unstake(ctx, amount) })
}

func (g *gate) ClaimReward(ctx context.Context) (string, error) {
	return g.do(func() (string, error) { return g.actions.ClaimReward(ctx) })
}

func (g *gate) DepositColdStorage(ctx context.Context, amount string, coldAddr common.Address) (string, error) {
	return g.do(func() (string, error) { return g.actions.DepositColdStorage(ctx, amount, coldAddr) })
}

func (g *gate) RetrieveColdStorage(ctx context.Context, amount, signature string) (string, error) {
	return g.do(func() (string, error) { return g.actions.RetrieveColdStorage(ctx, amount, signature) })
}

func (g *gate) Wrap(ctx context.Context, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.Wrap(ctx, amount) })
}

func (g *gate) Unwrap(ctx context.Context, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.Unwrap(ctx, amount) })
}

func (g *gate) OnRamp(ctx context.Context, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.OnRamp(ctx, amount) })
}

func (g *gate) OffRamp(ctx context.Context, amount string) (string, error) {
	return g.do(func() (string, error) { return g.actions.OffRamp(ctx, amount) })
}

func (g *gate) CreateProposal(ctx context.Context, description string, endBlock uint64) (string, error) {
	return g.do(func() (string, error) { return g.actions.CreateProposal(ctx, description, endBlock) })
}

func (g *gate) CastVote(ctx context.Context, proposalID uint64, support bool) (string, error) {
	return g.do(func() (string, error) { return g.actions.CastVote(ctx, proposalID, support) })
}
