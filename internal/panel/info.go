package panel

import (
	"strings"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// ChainLookup resolves chain names. *chain.Registry satisfies it.
type ChainLookup interface {
	GetByName(name string) (*chain.Chain, error)
}

// Bridge collects a cross-chain move. No bridge protocol is integrated; a
// valid request is acknowledged with a notification only.
type Bridge struct {
	base
	chains ChainLookup
	Amount AmountField
	from   string
	to     string
}

// NewBridge creates an empty bridge form over the given chain list.
func NewBridge(chains ChainLookup, n notify.Notifier) *Bridge {
	return &Bridge{base: newBase(n), chains: chains}
}

// SetChains selects source and destination chains by name.
func (p *Bridge) SetChains(from, to string) {
	p.from = strings.ToLower(strings.TrimSpace(from))
	p.to = strings.ToLower(strings.TrimSpace(to))
}

// Submit validates the request and acknowledges it.
func (p *Bridge) Submit() error {
	if _, err := p.chains.GetByName(p.from); err != nil {
		return p.reject(TitleInvalidChain, "Please select a source chain")
	}
	if _, err := p.chains.GetByName(p.to); err != nil {
		return p.reject(TitleInvalidChain, "Please select a destination chain")
	}
	if p.from == p.to {
		return p.reject(TitleInvalidChain, "Source and destination chains must differ")
	}
	if err := p.positive(p.Amount.Value()); err != nil {
		return err
	}
	p.notifier.Notify(notify.Success("Bridge Initiated", "Your bridge transaction is being processed."))
	p.Amount.Clear()
	p.from, p.to = "", ""
	return nil
}

// Payment methods accepted by Buy.
const (
	PaymentCard = "card"
	PaymentBank = "bank"
)

// Buy collects a fiat purchase. No payment processor is integrated; a valid
// request is acknowledged with a notification only.
type Buy struct {
	base
	Amount AmountField
	method string
}

// NewBuy creates a purchase form paying by card.
func NewBuy(n notify.Notifier) *Buy {
	return &Buy{base: newBase(n), method: PaymentCard}
}

// SetMethod selects the payment method.
func (p *Buy) SetMethod(m string) { p.method = strings.ToLower(strings.TrimSpace(m)) }

// Method returns the selected payment method.
func (p *Buy) Method() string { return p.method }

// Submit validates the purchase and acknowledges it.
func (p *Buy) Submit() error {
	if err := p.positive(p.Amount.Value()); err != nil {
		return err
	}
	if p.method != PaymentCard && p.method != PaymentBank {
		return p.reject(TitleInvalidPayment, "Please choose Credit Card or Bank Transfer")
	}
	p.notifier.Notify(notify.Success("Purchase Initiated", "Your crypto purchase is being processed."))
	p.Amount.Clear()
	return nil
}
