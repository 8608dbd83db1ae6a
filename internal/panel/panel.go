// Package panel holds the feature forms. Each panel owns its input fields,
// gates keystrokes, checks submission preconditions locally and only then
// hands the request to the contract adapter. Fields are cleared when the
// adapter reports success and kept when it fails so the user can resubmit.
package panel

import (
	"context"
	"math/big"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
	"github.com/ethereum/go-ethereum/common"
)

// Validation titles.
const (
	TitleInvalidAddress   = "Invalid Address"
	TitleInvalidAmount    = "Invalid Amount"
	TitleMissingSignature = "Missing Signature"
	TitleInvalidTier      = "Invalid Tier"
	TitleInvalidChain     = "Invalid Chain"
	TitleInvalidPayment   = "Invalid Payment Method"
	TitleInvalidProposal  = "Invalid Proposal"
)

const (
	descAddress = "Please enter a valid Ethereum address"
	descAmount  = "Please enter a valid amount"
)

// ValidationError is a precondition failure caught before anything is sent.
type ValidationError struct {
	Title       string
	Description string
}

func (e *ValidationError) Error() string { return e.Title + ": " + e.Description }

// Actions is the adapter surface the panels drive. *cashdapp.Adapter
// satisfies it.
type Actions interface {
	Transfer(ctx context.Context, to common.Address, amount string) (string, error)
	TransferFrom(ctx context.Context, owner, to common.Address, amount string) (string, error)
	Approve(ctx context.Context, spender common.Address, amount string) (string, error)
	Stake(ctx context.Context, amount string, tier int) (string, error)
	Unstake(ctx context.Context, amount string) (string, error)
	ClaimReward(ctx context.Context) (string, error)
	DepositColdStorage(ctx context.Context, amount string, coldAddr common.Address) (string, error)
	RetrieveColdStorage(ctx context.Context, amount, signature string) (string, error)
	Wrap(ctx context.Context, amount string) (string, error)
	Unwrap(ctx context.Context, amount string) (string, error)
	OnRamp(ctx context.Context, amount string) (string, error)
	OffRamp(ctx context.Context, amount string) (string, error)
	CreateProposal(ctx context.Context, description string, endBlock uint64) (string, error)
	CastVote(ctx context.Context, proposalID uint64, support bool) (string, error)
}

// AmountField is a decimal amount input. Keystrokes that would make it
// non-numeric are dropped.
type AmountField struct {
	value string
}

// Set replaces the value if v matches ^\d*\.?\d*$ and reports whether it did.
func (f *AmountField) Set(v string) bool {
	if !units.IsNumericInput(v) {
		return false
	}
	f.value = v
	return true
}

// Value returns the current text.
func (f *AmountField) Value() string { return f.value }

// Clear empties the field.
func (f *AmountField) Clear() { f.value = "" }

// AddressField is an account address input. Any text is stored; Valid
// tracks whether it is a well-formed address. Empty counts as valid so an
// untouched field is not flagged.
type AddressField struct {
	value string
	valid bool
}

// Set stores v and recomputes validity.
func (f *AddressField) Set(v string) {
	f.value = v
	f.valid = v == "" || chain.IsValidAddress(v)
}

// Value returns the current text.
func (f *AddressField) Value() string { return f.value }

// Valid reports the display validity flag.
func (f *AddressField) Valid() bool { return f.value == "" || f.valid }

// Address returns the parsed address and whether it may be submitted.
func (f *AddressField) Address() (common.Address, bool) {
	if f.value == "" || !chain.IsValidAddress(f.value) {
		return common.Address{}, false
	}
	return common.HexToAddress(f.value), true
}

// Clear empties the field.
func (f *AddressField) Clear() { f.value, f.valid = "", true }

// base carries what every panel shares: where to report and the last known
// balance.
type base struct {
	notifier notify.Notifier
	balance  *big.Int
}

func newBase(n notify.Notifier) base {
	if n == nil {
		n = notify.Discard
	}
	return base{notifier: n, balance: new(big.Int)}
}

// SetBalance updates the balance used for over-balance checks. It is display
// state refreshed by the caller on every new block.
func (b *base) SetBalance(wei *big.Int) {
	if wei == nil {
		wei = new(big.Int)
	}
	b.balance = new(big.Int).Set(wei)
}

// Balance returns the balance rendered as on every panel: four decimals.
func (b *base) Balance() string { return units.FormatFixed(b.balance, 4) }

// reject emits a blocking destructive notification and returns it as an error.
func (b *base) reject(title, description string) error {
	b.notifier.Notify(notify.Failure(title, description))
	return &ValidationError{Title: title, Description: description}
}

// positive parses amount and requires it to be greater than zero.
func (b *base) positive(amount string) error {
	if _, err := units.ParsePositive(amount); err != nil {
		return b.reject(TitleInvalidAmount, descAmount)
	}
	return nil
}

// withinBalance is positive plus amount <= balance.
func (b *base) withinBalance(amount string) error {
	wei, err := units.ParsePositive(amount)
	if err != nil || wei.Cmp(b.balance) > 0 {
		return b.reject(TitleInvalidAmount, descAmount)
	}
	return nil
}
