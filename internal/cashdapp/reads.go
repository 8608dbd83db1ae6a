package cashdapp

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/ethereum/go-ethereum/common"
)

// ErrNoBlockSource is returned by operations that need the chain head when
// the adapter was built without WithBlockSource.
var ErrNoBlockSource = errors.New("no block source configured")

const titleLoadFailed = "Failed to Load"

// readFailed logs a failed read and reports it once. Successful reads are
// rendered by the caller and emit nothing.
func (a *Adapter) readFailed(what string, err error) error {
	a.logger.Error("read failed", "op", what, "err", err)
	a.notifier.Notify(notify.Failure(titleLoadFailed, fmt.Sprintf("Failed to load %s. Please try again.", what)))
	return fmt.Errorf("reading %s: %w", what, err)
}

// TokenName reads name().
func (a *Adapter) TokenName(ctx context.Context) (string, error) {
	v, err := a.reader.Name(ctx)
	if err != nil {
		return "", a.readFailed("token name", err)
	}
	return v, nil
}

// TokenSymbol reads symbol().
func (a *Adapter) TokenSymbol(ctx context.Context) (string, error) {
	v, err := a.reader.Symbol(ctx)
	if err != nil {
		return "", a.readFailed("token symbol", err)
	}
	return v, nil
}

// TotalSupply reads totalSupply() in wei.
func (a *Adapter) TotalSupply(ctx context.Context) (*big.Int, error) {
	v, err := a.reader.TotalSupply(ctx)
	if err != nil {
		return nil, a.readFailed("total supply", err)
	}
	return v, nil
}

// BalanceWei reads the session account's balance in wei.
func (a *Adapter) BalanceWei(ctx context.Context) (*big.Int, error) {
	if !a.session.Connected() {
		return nil, ErrNotConnected
	}
	v, err := a.reader.BalanceOf(ctx, a.session.Address)
	if err != nil {
		return nil, a.readFailed("balance", err)
	}
	return v, nil
}

// Balance reads the session account's balance as an exact decimal string.
// The same on-chain balance always yields the same string.
func (a *Adapter) Balance(ctx context.Context) (string, error) {
	wei, err := a.BalanceWei(ctx)
	if err != nil {
		return "", err
	}
	return units.Format(wei), nil
}

// Allowance reads how much spender may move from owner.
func (a *Adapter) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	v, err := a.reader.Allowance(ctx, owner, spender)
	if err != nil {
		return nil, a.readFailed("allowance", err)
	}
	return v, nil
}

// CashDapp reads the operator's on/off-ramp statistics.
func (a *Adapter) CashDapp(ctx context.Context, operator common.Address) (*contract.CashDappInfo, error) {
	v, err := a.reader.CashDapp(ctx, operator)
	if err != nil {
		return nil, a.readFailed("operator stats", err)
	}
	return v, nil
}

// BalanceUpdate is one refresh delivered by WatchBalance.
type BalanceUpdate struct {
	Block     uint64
	Wei       *big.Int
	Formatted string
	Err       error
}

// WatchBalance polls the chain head every interval and re-reads the session
// balance each time a new block is seen, calling fn with the result. Polls
// that see the same block as the previous successful refresh call nothing.
// Failures are passed to fn and retried on the next tick without
// notifications. It returns when ctx is done.
func (a *Adapter) WatchBalance(ctx context.Context, interval time.Duration, fn func(BalanceUpdate)) error {
	if a.blocks == nil {
		return ErrNoBlockSource
	}
	if !a.session.Connected() {
		return ErrNotConnected
	}
	if interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", interval)
	}

	var last uint64
	seen := false
	poll := func() {
		block, err := a.blocks.BlockNumber(ctx)
		if err != nil {
			if ctx.Err() == nil {
				fn(BalanceUpdate{Err: fmt.Errorf("reading block number: %w", err)})
			}
			return
		}
		if seen && block == last {
			return
		}
		wei, err := a.reader.BalanceOf(ctx, a.session.Address)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Debug("balance refresh failed", "block", block, "err", err)
				fn(BalanceUpdate{Block: block, Err: fmt.Errorf("reading balance: %w", err)})
			}
			return
		}
		last, seen = block, true
		fn(BalanceUpdate{Block: block, Wei: wei, Formatted: units.Format(wei)})
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	poll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// History returns XMRT transfers touching the session account in
// [fromBlock, toBlock], newest first. A zero toBlock means the chain head and
// a zero fromBlock means span blocks before it.
func (a *Adapter) History(ctx context.Context, fromBlock, toBlock, span uint64) ([]contract.TransferEvent, error) {
	if !a.session.Connected() {
		return nil, ErrNotConnected
	}
	if a.logs == nil {
		return nil, errors.New("no log source configured")
	}
	if toBlock == 0 {
		if a.blocks == nil {
			return nil, ErrNoBlockSource
		}
		head, err := a.blocks.BlockNumber(ctx)
		if err != nil {
			return nil, a.readFailed("transaction history", err)
		}
		toBlock = head
	}
	if fromBlock == 0 && toBlock > span {
		fromBlock = toBlock - span
	}
	if fromBlock > toBlock {
		return nil, fmt.Errorf("invalid block range %d..%d", fromBlock, toBlock)
	}

	events, err := contract.TransferHistory(ctx, a.logs, a.desc, a.session.Address, fromBlock, toBlock)
	if err != nil {
		return nil, a.readFailed("transaction history", err)
	}
	return events, nil
}
