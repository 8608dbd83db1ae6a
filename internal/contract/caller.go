package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

// CallBackend executes eth_call. *chain.EVMClient satisfies it.
type CallBackend interface {
	CallContract(ctx context.Context, msg chain.CallMsg) ([]byte, error)
}

// CashDappInfo is an operator's record in the contract's cashDapps mapping.
type CashDappInfo struct {
	Operator           common.Address
	TotalFiatOnRamped  *big.Int
	TotalFiatOffRamped *big.Int
	TotalFeesCollected *big.Int
}

// Caller calls read-only (view/pure) contract functions.
type Caller struct {
	backend CallBackend
	desc    *Descriptor
}

// NewCaller creates a Caller for desc over backend.
func NewCaller(backend CallBackend, desc *Descriptor) *Caller {
	return &Caller{backend: backend, desc: desc}
}

// Call calls a read function on the contract and returns the decoded outputs.
func (c *Caller) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	if _, err := c.desc.Method(method); err != nil {
		return nil, err
	}
	if !c.desc.IsRead(method) {
		return nil, fmt.Errorf("%w: %q", ErrNotReadable, method)
	}

	calldata, err := c.desc.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	result, err := c.backend.CallContract(ctx, chain.CallMsg{To: c.desc.Address, Data: calldata})
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	return c.desc.Unpack(method, result)
}

// Name returns the token name.
func (c *Caller) Name(ctx context.Context) (string, error) {
	out, err := c.Call(ctx, MethodName)
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

// Symbol returns the token symbol.
func (c *Caller) Symbol(ctx context.Context) (string, error) {
	out, err := c.Call(ctx, MethodSymbol)
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

// TotalSupply returns the total supply in wei.
func (c *Caller) TotalSupply(ctx context.Context) (*big.Int, error) {
	out, err := c.Call(ctx, MethodTotalSupply)
	if err != nil {
		return nil, err
	}
	return asBig(out, 0)
}

// BalanceOf returns owner's balance in wei.
func (c *Caller) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, MethodBalanceOf, owner)
	if err != nil {
		return nil, err
	}
	return asBig(out, 0)
}

// Allowance returns how much spender may move on behalf of owner.
func (c *Caller) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, MethodAllowance, owner, spender)
	if err != nil {
		return nil, err
	}
	return asBig(out, 0)
}

// CashDapp returns the operator statistics recorded for operator.
func (c *Caller) CashDapp(ctx context.Context, operator common.Address) (*CashDappInfo, error) {
	out, err := c.Call(ctx, MethodCashDapps, operator)
	if err != nil {
		return nil, err
	}
	if len(out) != 4 {
		return nil, fmt.Errorf("decoding %s: expected 4 outputs, got %d", MethodCashDapps, len(out))
	}
	op, ok := out[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("decoding %s: output 0 is %T, not address", MethodCashDapps, out[0])
	}
	info := &CashDappInfo{Operator: op}
	if info.TotalFiatOnRamped, err = asBig(out, 1); err != nil {
		return nil, err
	}
	if info.TotalFiatOffRamped, err = asBig(out, 2); err != nil {
		return nil, err
	}
	if info.TotalFeesCollected, err = asBig(out, 3); err != nil {
		return nil, err
	}
	return info, nil
}

func asString(out []interface{}, i int) (string, error) {
	if i >= len(out) {
		return "", fmt.Errorf("missing output %d", i)
	}
	s, ok := out[i].(string)
	if !ok {
		return "", fmt.Errorf("output %d is %T, not string", i, out[i])
	}
	return s, nil
}

func asBig(out []interface{}, i int) (*big.Int, error) {
	if i >= len(out) {
		return nil, fmt.Errorf("missing output %d", i)
	}
	n, ok := out[i].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("output %d is %T, not uint256", i, out[i])
	}
	return n, nil
}
