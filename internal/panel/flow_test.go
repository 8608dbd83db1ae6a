package panel_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSender stands in for the signing sender behind the adapter.
type captureSender struct{ calls []contract.Call }

func (c *captureSender) Send(_ context.Context, call contract.Call) (string, error) {
	c.calls = append(c.calls, call)
	return "0x01", nil
}

// nopReader satisfies cashdapp.Reader; the flows below never read.
type nopReader struct{}

func (nopReader) Name(context.Context) (string, error)          { return "", nil }
func (nopReader) Symbol(context.Context) (string, error)        { return "", nil }
func (nopReader) TotalSupply(context.Context) (*big.Int, error) { return new(big.Int), nil }
func (nopReader) BalanceOf(context.Context, common.Address) (*big.Int, error) {
	return new(big.Int), nil
}
func (nopReader) Allowance(context.Context, common.Address, common.Address) (*big.Int, error) {
	return new(big.Int), nil
}
func (nopReader) CashDapp(context.Context, common.Address) (*contract.CashDappInfo, error) {
	return &contract.CashDappInfo{}, nil
}

func realAdapter(t *testing.T) (*cashdapp.Adapter, *captureSender, *notify.Recorder) {
	t.Helper()
	desc, err := contract.NewXMRT("")
	require.NoError(t, err)
	sender := &captureSender{}
	rec := &notify.Recorder{}
	a := cashdapp.New(
		cashdapp.Session{Address: common.HexToAddress(ownerAddr), ChainID: 11155111},
		desc, nopReader{},
		cashdapp.WithSender(sender), cashdapp.WithNotifier(rec),
	)
	return a, sender, rec
}

func TestTransferFlowEndToEnd(t *testing.T) {
	a, sender, rec := realAdapter(t)
	p := panel.NewTransfer(a, rec)
	p.SetBalance(ether(50))

	p.Recipient.Set(deadAddr)
	p.Amount.Set("10")
	_, err := p.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, contract.MethodTransfer, call.Method)
	assert.Equal(t, common.HexToAddress(deadAddr), call.Args[0])
	assert.Equal(t, ether(10), call.Args[1], "10 * 10^18")

	assert.Equal(t, "", p.Recipient.Value())
	assert.Equal(t, "", p.Amount.Value())

	require.Equal(t, 1, rec.Len())
	n, _ := rec.Last()
	assert.Equal(t, "Transaction Successful", n.Title)
	assert.Contains(t, n.Description, "0x0000…dEaD")
}

func TestWrapFlowEndToEnd(t *testing.T) {
	a, sender, rec := realAdapter(t)
	p := panel.NewWrap(a, rec)

	p.Amount.Set("5")
	_, err := p.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, ether(5), call.Args[0])
	fee := new(big.Int).Div(new(big.Int).Mul(ether(5), big.NewInt(10)), big.NewInt(10000))
	assert.Equal(t, fee, call.Value)
	assert.Equal(t, 1, rec.Len())
}

func TestRejectedFlowNeverReachesSender(t *testing.T) {
	a, sender, rec := realAdapter(t)
	p := panel.NewTransfer(a, rec)
	p.SetBalance(ether(50))
	p.Recipient.Set("0xbad")
	p.Amount.Set("10")

	_, err := p.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, sender.calls)
	require.Equal(t, 1, rec.Len())
	n, _ := rec.Last()
	assert.Equal(t, "Invalid Address", n.Title)
}
