package panel

import (
	"context"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// Approve grants a spender an allowance. Allowances are not bounded by the
// balance.
type Approve struct {
	base
	actions Actions
	Spender AddressField
	Amount  AmountField
}

// NewApprove creates an empty approve form.
func NewApprove(a Actions, n notify.Notifier) *Approve {
	return &Approve{base: newBase(n), actions: a}
}

// Submit approves Spender for Amount.
func (p *Approve) Submit(ctx context.Context) (string, error) {
	spender, ok := p.Spender.Address()
	if !ok {
		return "", p.reject(TitleInvalidAddress, descAddress)
	}
	if err := p.positive(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.Approve(ctx, spender, p.Amount.Value())
	if err != nil {
		return hash, err
	}
	p.Spender.Clear()
	p.Amount.Clear()
	return hash, nil
}

// TransferFrom spends an allowance granted by Owner.
type TransferFrom struct {
	base
	actions   Actions
	Owner     AddressField
	Recipient AddressField
	Amount    AmountField
}

// NewTransferFrom creates an empty transfer-from form.
func NewTransferFrom(a Actions, n notify.Notifier) *TransferFrom {
	return &TransferFrom{base: newBase(n), actions: a}
}

// Submit moves Amount from Owner to Recipient.
func (p *TransferFrom) Submit(ctx context.Context) (string, error) {
	owner, ok := p.Owner.Address()
	if !ok {
		return "", p.reject(TitleInvalidAddress, "Please enter a valid owner address")
	}
	to, ok := p.Recipient.Address()
	if !ok {
		return "", p.reject(TitleInvalidAddress, descAddress)
	}
	if err := p.positive(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.TransferFrom(ctx, owner, to, p.Amount.Value())
	if err != nil {
		return hash, err
	}
	p.Owner.Clear()
	p.Recipient.Clear()
	p.Amount.Clear()
	return hash, nil
}
