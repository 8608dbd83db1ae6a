package cashdapp

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Staking tiers accepted by stake(amount, tierLevel).
const (
	MinTier = 1
	MaxTier = 3
)

// TierDays returns the lock period of a staking tier, or 0 for an unknown tier.
func TierDays(tier int) int {
	if tier < MinTier || tier > MaxTier {
		return 0
	}
	return tier * 30
}

// WrapFee is the value attached to wrapMonero for amount wei.
func WrapFee(amount *big.Int) *big.Int { return units.Fee(amount, units.WrapFeeBps) }

// OnRampFee is the value attached to onRampFiat for amount wei.
func OnRampFee(amount *big.Int) *big.Int { return units.Fee(amount, units.OnRampFeeBps) }

// Wrap converts amount XMR into XMRT, attaching the 0.1% bridge fee.
func (a *Adapter) Wrap(ctx context.Context, amount string) (string, error) {
	o := outcome{
		op:      "wrap",
		success: fmt.Sprintf("Successfully wrapped %s XMR to XMRT", amount),
		failure: "Failed to wrap Monero. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{
		Method: contract.MethodWrapMonero,
		Args:   []interface{}{wei},
		Value:  WrapFee(wei),
	})
}

// Unwrap converts amount XMRT back to XMR.
func (a *Adapter) Unwrap(ctx context.Context, amount string) (string, error) {
	o := outcome{
		op:      "unwrap",
		success: fmt.Sprintf("Successfully unwrapped %s XMRT to XMR", amount),
		failure: "Failed to unwrap Monero. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodUnwrapMonero, Args: []interface{}{wei}})
}

// OnRamp credits amount of fiat as XMRT, attaching the 0.5% on-ramp fee.
func (a *Adapter) OnRamp(ctx context.Context, amount string) (string, error) {
	o := outcome{
		op:      "onramp",
		success: fmt.Sprintf("Successfully on-ramped %s fiat to XMRT", amount),
		failure: "Failed to on-ramp fiat. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{
		Method: contract.MethodOnRampFiat,
		Args:   []interface{}{wei},
		Value:  OnRampFee(wei),
	})
}

// OffRamp redeems amount XMRT for fiat.
func (a *Adapter) OffRamp(ctx context.Context, amount string) (string, error) {
	o := outcome{
		op:      "offramp",
		success: fmt.Sprintf("Successfully off-ramped %s XMRT to fiat", amount),
		failure: "Failed to off-ramp fiat. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodOffRampFiat, Args: []interface{}{wei}})
}

// Transfer sends amount XMRT from the session account to to.
func (a *Adapter) Transfer(ctx context.Context, to common.Address, amount string) (string, error) {
	o := outcome{
		op:      "transfer",
		success: fmt.Sprintf("Successfully transferred %s XMRT to %s", amount, ui.TruncateAddr(to.Hex())),
		failure: "Failed to transfer XMRT. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodTransfer, Args: []interface{}{to, wei}})
}

// TransferFrom moves amount XMRT from owner to to using the session's allowance.
func (a *Adapter) TransferFrom(ctx context.Context, owner, to common.Address, amount string) (string, error) {
	o := outcome{
		op: "transferFrom",
		success: fmt.Sprintf("Successfully transferred %s XMRT from %s to %s",
			amount, ui.TruncateAddr(owner.Hex()), ui.TruncateAddr(to.Hex())),
		failure: "Failed to transfer XMRT. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodTransferFrom, Args: []interface{}{owner, to, wei}})
}

// Approve lets spender move up to amount XMRT on the session's behalf.
func (a *Adapter) Approve(ctx context.Context, spender common.Address, amount string) (string, error) {
	o := outcome{
		op:      "approve",
		success: fmt.Sprintf("Successfully approved %s to spend %s XMRT", ui.TruncateAddr(spender.Hex()), amount),
		failure: "Failed to approve spender. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodApprove, Args: []interface{}{spender, wei}})
}

// Stake locks amount XMRT in tier (1-3).
func (a *Adapter) Stake(ctx context.Context, amount string, tier int) (string, error) {
	o := outcome{
		op:      "stake",
		success: fmt.Sprintf("Successfully staked %s XMRT in Tier %d (%d days)", amount, tier, TierDays(tier)),
		failure: "Failed to stake XMRT. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{
		Method: contract.MethodStake,
		Args:   []interface{}{wei, big.NewInt(int64(tier))},
	})
}

// Unstake releases amount staked XMRT.
func (a *Adapter) Unstake(ctx context.Context, amount string) (string, error) {
	o := outcome{
		op:      "unstake",
		success: fmt.Sprintf("Successfully unstaked %s XMRT", amount),
		failure: "Failed to unstake XMRT. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{Method: contract.MethodUnstake, Args: []interface{}{wei}})
}

// ClaimReward collects accrued staking rewards.
func (a *Adapter) ClaimReward(ctx context.Context) (string, error) {
	return a.write(ctx, outcome{
		op:      "reward",
		success: "Successfully claimed staking rewards",
		failure: "Failed to claim rewards. Please try again.",
	}, contract.Call{Method: contract.MethodGetReward})
}

// DepositColdStorage moves amount XMRT to the cold storage address.
func (a *Adapter) DepositColdStorage(ctx context.Context, amount string, coldAddr common.Address) (string, error) {
	o := outcome{
		op:      "coldDeposit",
		success: fmt.Sprintf("Successfully sent %s XMRT to cold storage %s", amount, ui.TruncateAddr(coldAddr.Hex())),
		failure: "Failed to transfer to cold storage. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	return a.write(ctx, o, contract.Call{
		Method: contract.MethodTransferToColdStorage,
		Args:   []interface{}{wei, coldAddr},
	})
}

// RetrieveColdStorage pulls amount XMRT back from cold storage. signature is
// passed through as 0x-prefixed hex; the contract alone verifies it.
func (a *Adapter) RetrieveColdStorage(ctx context.Context, amount, signature string) (string, error) {
	o := outcome{
		op:      "coldRetrieve",
		success: fmt.Sprintf("Successfully retrieved %s XMRT from cold storage", amount),
		failure: "Failed to retrieve from cold storage. Please try again.",
	}
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return a.parseFailed(o, err)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return a.parseFailed(o, fmt.Errorf("decoding signature: %w", err))
	}
	return a.write(ctx, o, contract.Call{
		Method: contract.MethodRetrieveFromColdStorage,
		Args:   []interface{}{wei, sig},
	})
}

// CreateProposal opens a governance proposal that closes at endBlock.
func (a *Adapter) CreateProposal(ctx context.Context, description string, endBlock uint64) (string, error) {
	return a.write(ctx, outcome{
		op:      "propose",
		success: fmt.Sprintf("Proposal created, voting ends at block %d", endBlock),
		failure: "Failed to create proposal. Please try again.",
	}, contract.Call{
		Method: contract.MethodCreateProposal,
		Args:   []interface{}{description, new(big.Int).SetUint64(endBlock)},
	})
}

// CastVote votes for (support) or against a proposal.
func (a *Adapter) CastVote(ctx context.Context, proposalID uint64, support bool) (string, error) {
	side := "against"
	if support {
		side = "for"
	}
	return a.write(ctx, outcome{
		op:      "vote",
		success: fmt.Sprintf("Voted %s proposal #%d", side, proposalID),
		failure: "Failed to cast vote. Please try again.",
	}, contract.Call{
		Method: contract.MethodCastVote,
		Args:   []interface{}{new(big.Int).SetUint64(proposalID), support},
	})
}
