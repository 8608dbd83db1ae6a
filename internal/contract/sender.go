package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxBackend is the node surface a Sender needs. *chain.EVMClient satisfies it.
type TxBackend interface {
	EstimateGas(ctx context.Context, msg chain.CallMsg) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	PendingNonce(ctx context.Context, addr common.Address) (uint64, error)
	SendRawTransaction(ctx context.Context, raw []byte) (string, error)
}

// TxSigner signs transactions for one account. *wallet.Signer satisfies it.
type TxSigner interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// Call is one state-changing invocation: method, packed arguments and the
// native value attached to it (nil means zero).
type Call struct {
	Method string
	Args   []interface{}
	Value  *big.Int
}

// Sender sends write transactions to a contract.
type Sender struct {
	backend TxBackend
	desc    *Descriptor
	signer  TxSigner
	chainID *big.Int
}

// NewSender creates a Sender.
func NewSender(backend TxBackend, desc *Descriptor, signer TxSigner, chainID *big.Int) *Sender {
	return &Sender{
		backend: backend,
		desc:    desc,
		signer:  signer,
		chainID: chainID,
	}
}

// From returns the address transactions are sent from.
func (s *Sender) From() common.Address {
	return s.signer.Address()
}

// Send calls a write function and broadcasts the transaction.
// Returns the transaction hash.
func (s *Sender) Send(ctx context.Context, call Call) (string, error) {
	if _, err := s.desc.Method(call.Method); err != nil {
		return "", err
	}
	if s.desc.IsRead(call.Method) {
		return "", fmt.Errorf("%w: %q", ErrNotWritable, call.Method)
	}
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() > 0 && !s.desc.IsPayable(call.Method) {
		return "", fmt.Errorf("%w: %q", ErrNotPayable, call.Method)
	}

	calldata, err := s.desc.Pack(call.Method, call.Args...)
	if err != nil {
		return "", err
	}

	from := s.signer.Address()
	to := s.desc.Address

	gas, err := s.backend.EstimateGas(ctx, chain.CallMsg{From: from, To: to, Data: calldata, Value: value})
	if err != nil {
		gas = config.GasLimitContractCall
	}

	gasPrice, err := s.backend.GasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.backend.PendingNonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      calldata,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.backend.SendRawTransaction(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}

	return hash, nil
}
