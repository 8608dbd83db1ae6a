// Package cashdapp is the contract-interaction adapter: it turns decimal
// user amounts into XMRT calls, attaches protocol fees, submits through the
// session wallet and reports each outcome as exactly one notification.
package cashdapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

const (
	titleSuccess = "Transaction Successful"
	titleFailure = "Transaction Failed"
)

var (
	// ErrNotConnected is returned when an operation needs a session address
	// and the session has none.
	ErrNotConnected = errors.New("no wallet connected")
	// ErrReadOnly is returned by writes on an adapter built without a sender.
	ErrReadOnly = errors.New("wallet cannot sign transactions")
)

// Session is the connected account. It is passed in explicitly, never read
// from process state.
type Session struct {
	Address common.Address
	ChainID int64
}

// Connected reports whether the session has an account.
func (s Session) Connected() bool { return s.Address != (common.Address{}) }

// Reader is the read side of the token. *contract.Caller satisfies it.
type Reader interface {
	Name(ctx context.Context) (string, error)
	Symbol(ctx context.Context) (string, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	CashDapp(ctx context.Context, operator common.Address) (*contract.CashDappInfo, error)
}

// Submitter broadcasts one write. *contract.Sender satisfies it.
type Submitter interface {
	Send(ctx context.Context, call contract.Call) (string, error)
}

// BlockSource reports the chain head. *chain.EVMClient satisfies it.
type BlockSource interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// ReceiptWaiter blocks until a transaction is mined. *chain.EVMClient satisfies it.
type ReceiptWaiter interface {
	WaitForReceipt(ctx context.Context, hash string, poll, timeout time.Duration) (*chain.TxReceipt, error)
}

// Adapter is the single entry point panels use to reach the contract.
type Adapter struct {
	session  Session
	desc     *contract.Descriptor
	reader   Reader
	sender   Submitter
	notifier notify.Notifier
	logger   *log.Logger

	blocks BlockSource
	logs   contract.LogBackend

	waiter      ReceiptWaiter
	pollEvery   time.Duration
	waitTimeout time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSender enables writes. Without it every write fails with ErrReadOnly.
func WithSender(s Submitter) Option { return func(a *Adapter) { a.sender = s } }

// WithNotifier sets where outcomes are reported. Defaults to notify.Discard.
func WithNotifier(n notify.Notifier) Option { return func(a *Adapter) { a.notifier = n } }

// WithLogger sets the structured logger used for remote failures.
func WithLogger(l *log.Logger) Option { return func(a *Adapter) { a.logger = l } }

// WithBlockSource enables WatchBalance and open-ended history ranges.
func WithBlockSource(b BlockSource) Option { return func(a *Adapter) { a.blocks = b } }

// WithLogs enables History.
func WithLogs(l contract.LogBackend) Option { return func(a *Adapter) { a.logs = l } }

// WithReceiptWait makes writes succeed only once the transaction is mined
// without reverting. By default a write succeeds when it is broadcast.
func WithReceiptWait(w ReceiptWaiter, poll, timeout time.Duration) Option {
	return func(a *Adapter) {
		a.waiter = w
		a.pollEvery = poll
		a.waitTimeout = timeout
	}
}

// New creates an Adapter for session over the XMRT descriptor desc.
func New(session Session, desc *contract.Descriptor, reader Reader, opts ...Option) *Adapter {
	a := &Adapter{
		session:  session,
		desc:     desc,
		reader:   reader,
		notifier: notify.Discard,
		logger:   log.New(io.Discard),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Session returns the account the adapter acts for.
func (a *Adapter) Session() Session { return a.session }

// Descriptor returns the contract the adapter talks to.
func (a *Adapter) Descriptor() *contract.Descriptor { return a.desc }

// CanWrite reports whether the adapter has a signing sender.
func (a *Adapter) CanWrite() bool { return a.sender != nil }

// outcome is how one write is reported to the user.
type outcome struct {
	op      string // log key
	success string // description shown on success
	failure string // description shown on any failure
}

// Submit sends an arbitrary write call and reports it generically. The
// per-operation helpers route through the same path with their own messages.
func (a *Adapter) Submit(ctx context.Context, call contract.Call) (string, error) {
	return a.write(ctx, outcome{
		op:      call.Method,
		success: fmt.Sprintf("Successfully called %s", call.Method),
		failure: fmt.Sprintf("Failed to call %s. Please try again.", call.Method),
	}, call)
}

// write is the one place a transaction leaves the process. Exactly one
// notification is emitted per call.
func (a *Adapter) write(ctx context.Context, o outcome, call contract.Call) (string, error) {
	hash, err := a.send(ctx, call)
	if err != nil {
		a.fail(o, err)
		return hash, fmt.Errorf("%s: %w", o.op, err)
	}
	a.logger.Info("transaction sent", "op", o.op, "tx", hash)
	a.notifier.Notify(notify.Success(titleSuccess, o.success))
	return hash, nil
}

func (a *Adapter) send(ctx context.Context, call contract.Call) (string, error) {
	if a.sender == nil {
		return "", ErrReadOnly
	}
	hash, err := a.sender.Send(ctx, call)
	if err != nil {
		return "", err
	}
	if a.waiter == nil {
		return hash, nil
	}
	if _, err := a.waiter.WaitForReceipt(ctx, hash, a.pollEvery, a.waitTimeout); err != nil {
		return hash, err
	}
	return hash, nil
}

// fail logs err and emits the fixed failure notification for o.
func (a *Adapter) fail(o outcome, err error) {
	a.logger.Error("transaction failed", "op", o.op, "err", err)
	a.notifier.Notify(notify.Failure(titleFailure, o.failure))
}

// parseFailed reports an amount or argument that could not be encoded. It
// goes through the same failure notification as a remote error.
func (a *Adapter) parseFailed(o outcome, err error) (string, error) {
	a.fail(o, err)
	return "", fmt.Errorf("%s: %w", o.op, err)
}
