package contract

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCallBackend answers eth_call by selector with pre-encoded outputs.
type fakeCallBackend struct {
	results map[string][]byte // 4-byte selector (string) -> return data
	calls   []chain.CallMsg
	err     error
}

func (f *fakeCallBackend) CallContract(_ context.Context, msg chain.CallMsg) ([]byte, error) {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[string(msg.Data[:4])], nil
}

func (f *fakeCallBackend) respond(t *testing.T, d *Descriptor, method string, values ...interface{}) {
	t.Helper()
	m := d.ABI.Methods[method]
	data, err := m.Outputs.Pack(values...)
	require.NoError(t, err)
	if f.results == nil {
		f.results = make(map[string][]byte)
	}
	f.results[string(m.ID)] = data
}

func TestCallerTokenInfo(t *testing.T) {
	d := mustXMRT(t)
	backend := &fakeCallBackend{}
	backend.respond(t, d, MethodName, "XMRT Token")
	backend.respond(t, d, MethodSymbol, "XMRT")
	backend.respond(t, d, MethodTotalSupply, new(big.Int).Mul(big.NewInt(21_000_000), big.NewInt(1e18)))

	c := NewCaller(backend, d)
	ctx := context.Background()

	name, err := c.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XMRT Token", name)

	sym, err := c.Symbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XMRT", sym)

	supply, err := c.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "21000000000000000000000000", supply.String())

	for _, msg := range backend.calls {
		assert.Equal(t, d.Address, msg.To)
	}
}

func TestCallerBalanceOfEncodesOwner(t *testing.T) {
	d := mustXMRT(t)
	backend := &fakeCallBackend{}
	backend.respond(t, d, MethodBalanceOf, big.NewInt(50))

	owner := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	bal, err := NewCaller(backend, d).BalanceOf(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), bal)

	require.Len(t, backend.calls, 1)
	data := backend.calls[0].Data
	assert.Equal(t, owner.Bytes(), data[4+12:4+32])
}

func TestCallerAllowance(t *testing.T) {
	d := mustXMRT(t)
	backend := &fakeCallBackend{}
	backend.respond(t, d, MethodAllowance, big.NewInt(7))

	got, err := NewCaller(backend, d).Allowance(context.Background(),
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		common.HexToAddress("0x2222222222222222222222222222222222222222"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), got)
}

func TestCallerCashDapp(t *testing.T) {
	d := mustXMRT(t)
	op := common.HexToAddress("0x1111111111111111111111111111111111111111")
	backend := &fakeCallBackend{}
	backend.respond(t, d, MethodCashDapps, op, big.NewInt(100), big.NewInt(40), big.NewInt(3))

	info, err := NewCaller(backend, d).CashDapp(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, op, info.Operator)
	assert.Equal(t, big.NewInt(100), info.TotalFiatOnRamped)
	assert.Equal(t, big.NewInt(40), info.TotalFiatOffRamped)
	assert.Equal(t, big.NewInt(3), info.TotalFeesCollected)
}

func TestCallerRejectsWriteMethods(t *testing.T) {
	backend := &fakeCallBackend{}
	_, err := NewCaller(backend, mustXMRT(t)).Call(context.Background(), MethodGetReward)
	assert.ErrorIs(t, err, ErrNotReadable)
	assert.Empty(t, backend.calls)
}

func TestCallerUnknownMethod(t *testing.T) {
	_, err := NewCaller(&fakeCallBackend{}, mustXMRT(t)).Call(context.Background(), "decimals")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestCallerBackendError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewCaller(&fakeCallBackend{err: boom}, mustXMRT(t)).Name(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "contract call failed")
}

func TestCallerEmptyReturnData(t *testing.T) {
	// A call to an address without code returns 0x.
	_, err := NewCaller(&fakeCallBackend{}, mustXMRT(t)).TotalSupply(context.Background())
	assert.Error(t, err)
}
