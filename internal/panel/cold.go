package panel

import (
	"context"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// ColdDeposit sends XMRT to a cold storage address.
type ColdDeposit struct {
	base
	actions Actions
	Address AddressField
	Amount  AmountField
}

// NewColdDeposit creates an empty deposit form.
func NewColdDeposit(a Actions, n notify.Notifier) *ColdDeposit {
	return &ColdDeposit{base: newBase(n), actions: a}
}

// Submit moves Amount to Address.
func (p *ColdDeposit) Submit(ctx context.Context) (string, error) {
	addr, ok := p.Address.Address()
	if !ok {
		return "", p.reject(TitleInvalidAddress, "Please enter a valid cold storage address")
	}
	if err := p.withinBalance(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.DepositColdStorage(ctx, p.Amount.Value(), addr)
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	p.Address.Clear()
	return hash, nil
}

// ColdRetrieve pulls XMRT back from cold storage with an owner signature.
// The signature is opaque here; only the contract verifies it.
type ColdRetrieve struct {
	base
	actions   Actions
	Amount    AmountField
	signature string
}

// NewColdRetrieve creates an empty retrieval form.
func NewColdRetrieve(a Actions, n notify.Notifier) *ColdRetrieve {
	return &ColdRetrieve{base: newBase(n), actions: a}
}

// SetSignature stores the retrieval signature as typed.
func (p *ColdRetrieve) SetSignature(sig string) { p.signature = sig }

// Signature returns the stored signature.
func (p *ColdRetrieve) Signature() string { return p.signature }

// Submit retrieves Amount using the stored signature.
func (p *ColdRetrieve) Submit(ctx context.Context) (string, error) {
	if p.signature == "" {
		return "", p.reject(TitleMissingSignature, "Please provide a valid signature for retrieval")
	}
	if err := p.positive(p.Amount.Value()); err != nil {
		return "", err
	}
	hash, err := p.actions.RetrieveColdStorage(ctx, p.Amount.Value(), p.signature)
	if err != nil {
		return hash, err
	}
	p.Amount.Clear()
	p.signature = ""
	return hash, nil
}
