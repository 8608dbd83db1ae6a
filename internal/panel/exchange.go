package panel

import (
	"context"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/units"
)

// amountForm is the single-amount form behind wrap, unwrap and the ramps.
type amountForm struct {
	base
	Amount AmountField

	capped bool // amount must not exceed the balance
	send   func(ctx context.Context, amount string) (string, error)
}

func (p *amountForm) Submit(ctx context.Context) (string, error) {
	check := p.positive
	if p.capped {
		check = p.withinBalance
	}
	if err := check(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.send(ctx, p.Amount.Value())
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	return hash, nil
}

// Wrap converts XMR to XMRT. The amount is in XMR so no balance cap applies.
type Wrap struct{ amountForm }

// NewWrap creates a wrap form.
func NewWrap(a Actions, n notify.Notifier) *Wrap {
	return &Wrap{amountForm{base: newBase(n), send: a.Wrap}}
}

// FeeQuote is the 0.1% fee that will be attached, for display. Empty when
// the amount does not parse.
func (p *Wrap) FeeQuote() string { return Quote(p.Amount.Value(), units.WrapFeeBps) }

// Unwrap converts XMRT back to XMR, capped by the balance.
type Unwrap struct{ amountForm }

// NewUnwrap creates an unwrap form.
func NewUnwrap(a Actions, n notify.Notifier) *Unwrap {
	return &Unwrap{amountForm{base: newBase(n), send: a.Unwrap, capped: true}}
}

// OnRamp credits fiat as XMRT.
type OnRamp struct{ amountForm }

// NewOnRamp creates an on-ramp form.
func NewOnRamp(a Actions, n notify.Notifier) *OnRamp {
	return &OnRamp{amountForm{base: newBase(n), send: a.OnRamp}}
}

// FeeQuote is the 0.5% fee that will be attached, for display.
func (p *OnRamp) FeeQuote() string { return Quote(p.Amount.Value(), units.OnRampFeeBps) }

// OffRamp redeems XMRT for fiat, capped by the balance.
type OffRamp struct{ amountForm }

// NewOffRamp creates an off-ramp form.
func NewOffRamp(a Actions, n notify.Notifier) *OffRamp {
	return &OffRamp{amountForm{base: newBase(n), send: a.OffRamp, capped: true}}
}

// FeeQuote is the 0.5% fee the contract keeps, for display only.
func (p *OffRamp) FeeQuote() string { return Quote(p.Amount.Value(), units.OffRampFeeBps) }

// Quote returns the fee at bps on a decimal amount, formatted for display.
// Empty when the amount does not parse.
func Quote(amount string, bps int64) string {
	wei, err := units.ParseAmount(amount)
	if err != nil {
		return ""
	}
	return units.Display(units.Fee(wei, bps))
}
