package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
}

// CallMsg describes an eth_call / eth_estimateGas request.
type CallMsg struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
}

// LogEntry holds one event log.
type LogEntry struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
	LogIndex    string   `json:"logIndex"`
}

// LogFilter selects logs for eth_getLogs. Block bounds are inclusive.
type LogFilter struct {
	Address   common.Address
	Topics    [][]common.Hash
	FromBlock uint64
	ToBlock   uint64
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint this client talks to.
func (c *EVMClient) URL() string { return c.url }

// quantity runs a call whose result is a hex-encoded uint64.
func (c *EVMClient) quantity(ctx context.Context, what, method string, params ...any) (uint64, error) {
	var n hexutil.Uint64
	if err := c.call(ctx, &n, method, params...); err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return uint64(n), nil
}

// bigQuantity runs a call whose result is a hex-encoded big integer.
func (c *EVMClient) bigQuantity(ctx context.Context, what, method string, params ...any) (*big.Int, error) {
	var n hexutil.Big
	if err := c.call(ctx, &n, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return n.ToInt(), nil
}

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.quantity(ctx, "block number", "eth_blockNumber")
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	return c.bigQuantity(ctx, "chain id", "eth_chainId")
}

// GasPrice returns the node's suggested gas price.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.bigQuantity(ctx, "gas price", "eth_gasPrice")
}

// EstimateGas estimates the gas msg will consume.
func (c *EVMClient) EstimateGas(ctx context.Context, msg CallMsg) (uint64, error) {
	return c.quantity(ctx, "gas estimate", "eth_estimateGas", toCallArg(msg), "latest")
}

// PendingNonce returns the account nonce including queued transactions.
func (c *EVMClient) PendingNonce(ctx context.Context, addr common.Address) (uint64, error) {
	return c.quantity(ctx, "nonce", "eth_getTransactionCount", addr, "pending")
}

// CallContract executes a read-only call against the latest block.
func (c *EVMClient) CallContract(ctx context.Context, msg CallMsg) ([]byte, error) {
	var out hexutil.Bytes
	if err := c.call(ctx, &out, "eth_call", toCallArg(msg), "latest"); err != nil {
		return nil, err
	}
	return out, nil
}

// SendRawTransaction broadcasts a signed transaction and returns its hash.
func (c *EVMClient) SendRawTransaction(ctx context.Context, raw []byte) (string, error) {
	var hash common.Hash
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw)); err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// TransactionReceipt fetches the receipt for hash. A pending transaction
// yields nil and no error.
func (c *EVMClient) TransactionReceipt(ctx context.Context, hash string) (*TxReceipt, error) {
	var r *struct {
		Status      hexutil.Uint64 `json:"status"`
		BlockNumber hexutil.Uint64 `json:"blockNumber"`
		GasUsed     hexutil.Uint64 `json:"gasUsed"`
	}
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return &TxReceipt{
		Hash:        hash,
		Status:      uint64(r.Status),
		BlockNumber: uint64(r.BlockNumber),
		GasUsed:     uint64(r.GasUsed),
	}, nil
}

// WaitForReceipt polls until the transaction is mined or timeout expires.
// A reverted transaction is returned together with an error.
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash string, poll, timeout time.Duration) (*TxReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		switch receipt, err := c.TransactionReceipt(ctx, hash); {
		case err != nil:
			return nil, err
		case receipt != nil && receipt.Status == types.ReceiptStatusFailed:
			return receipt, fmt.Errorf("transaction %s reverted", hash)
		case receipt != nil:
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined within %s: %w", hash, timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// GetLogs queries event logs matching the filter.
func (c *EVMClient) GetLogs(ctx context.Context, f LogFilter) ([]LogEntry, error) {
	filter := map[string]any{
		"address":   f.Address.Hex(),
		"fromBlock": hexutil.EncodeUint64(f.FromBlock),
		"toBlock":   hexutil.EncodeUint64(f.ToBlock),
	}
	if len(f.Topics) > 0 {
		topics := make([]any, len(f.Topics))
		for i, group := range f.Topics {
			switch len(group) {
			case 0:
				topics[i] = nil
			case 1:
				topics[i] = group[0].Hex()
			default:
				alts := make([]string, len(group))
				for j, h := range group {
					alts[j] = h.Hex()
				}
				topics[i] = alts
			}
		}
		filter["topics"] = topics
	}

	var logs []LogEntry
	if err := c.call(ctx, &logs, "eth_getLogs", filter); err != nil {
		return nil, err
	}
	return logs, nil
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	return time.Since(start), blockNum, err
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

func (c *EVMClient) call(ctx context.Context, result any, method string, params ...any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%s: decoding response (HTTP %d): %w", method, resp.StatusCode, err)
	}
	switch {
	case out.Error != nil:
		return out.Error
	case len(out.Result) == 0:
		return nil
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("%s: parsing result: %w", method, err)
	}
	return nil
}

func toCallArg(msg CallMsg) map[string]string {
	arg := map[string]string{
		"to": msg.To.Hex(),
	}
	if msg.From != (common.Address{}) {
		arg["from"] = msg.From.Hex()
	}
	if len(msg.Data) > 0 {
		arg["data"] = hexutil.Encode(msg.Data)
	}
	if msg.Value != nil && msg.Value.Sign() > 0 {
		arg["value"] = hexutil.EncodeBig(msg.Value)
	}
	return arg
}
