package panel

import (
	"context"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// Transfer is the user-to-user transfer form.
type Transfer struct {
	base
	actions   Actions
	Recipient AddressField
	Amount    AmountField
}

// NewTransfer creates an empty transfer form.
func NewTransfer(a Actions, n notify.Notifier) *Transfer {
	return &Transfer{base: newBase(n), actions: a}
}

// Submit sends Amount to Recipient. The amount must be positive and no
// larger than the balance.
func (p *Transfer) Submit(ctx context.Context) (string, error) {
	to, ok := p.Recipient.Address()
	if !ok {
		return "", p.reject(TitleInvalidAddress, descAddress)
	}
	if err := p.withinBalance(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.Transfer(ctx, to, p.Amount.Value())
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	p.Recipient.Clear()
	return hash, nil
}
