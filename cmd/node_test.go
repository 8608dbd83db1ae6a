package cmd

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

// fakeNode is a JSON-RPC node serving one XMRT contract.
type fakeNode struct {
	t    *testing.T
	desc *contract.Descriptor
	srv  *httptest.Server

	mu       sync.Mutex
	chainID  uint64
	block    uint64
	balance  *big.Int
	logs     []chain.LogEntry
	failCall bool
	sent     []*types.Transaction
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()
	desc, err := contract.NewXMRT("")
	require.NoError(t, err)
	n := &fakeNode{t: t, desc: desc, chainID: 1, block: 100, balance: new(big.Int)}
	n.srv = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNode) URL() string { return n.srv.URL }

func (n *fakeNode) setBalance(wei *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balance = wei
}

func (n *fakeNode) sentTxs() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction(nil), n.sent...)
}

type rpcReq struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     int               `json:"id"`
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req rpcReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	result, rpcErr := n.handle(req)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != "" {
		resp["error"] = map[string]interface{}{"code": -32000, "message": rpcErr}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}

func (n *fakeNode) handle(req rpcReq) (interface{}, string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch req.Method {
	case "eth_chainId":
		return hexutil.EncodeUint64(n.chainID), ""
	case "eth_blockNumber":
		return hexutil.EncodeUint64(n.block), ""
	case "eth_gasPrice":
		return "0x3b9aca00", ""
	case "eth_estimateGas":
		return "0xea60", ""
	case "eth_getTransactionCount":
		return hexutil.EncodeUint64(uint64(len(n.sent))), ""
	case "eth_sendRawTransaction":
		var raw string
		if err := json.Unmarshal(req.Params[0], &raw); err != nil {
			return nil, err.Error()
		}
		tx := new(types.Transaction)
		if err := tx.UnmarshalBinary(hexutil.MustDecode(raw)); err != nil {
			return nil, err.Error()
		}
		n.sent = append(n.sent, tx)
		return tx.Hash().Hex(), ""
	case "eth_getLogs":
		return n.logs, ""
	case "eth_call":
		if n.failCall {
			return nil, "execution reverted"
		}
		var arg map[string]string
		if err := json.Unmarshal(req.Params[0], &arg); err != nil {
			return nil, err.Error()
		}
		return n.call(hexutil.MustDecode(arg["data"]))
	}
	return nil, "method not found"
}

func (n *fakeNode) call(data []byte) (interface{}, string) {
	m, err := n.desc.ABI.MethodById(data[:4])
	if err != nil {
		return nil, err.Error()
	}
	var out []interface{}
	switch m.Name {
	case contract.MethodName:
		out = []interface{}{"XMRT Token"}
	case contract.MethodSymbol:
		out = []interface{}{"XMRT"}
	case contract.MethodTotalSupply:
		out = []interface{}{new(big.Int).Mul(big.NewInt(21_000_000), big.NewInt(1e18))}
	case contract.MethodBalanceOf:
		out = []interface{}{n.balance}
	case contract.MethodAllowance:
		out = []interface{}{big.NewInt(7e18)}
	case contract.MethodCashDapps:
		out = []interface{}{common.HexToAddress("0x00000000000000000000000000000000000000aa"), big.NewInt(3e18), big.NewInt(1e18), big.NewInt(2e16)}
	default:
		return nil, "not a view"
	}
	packed, err := m.Outputs.Pack(out...)
	if err != nil {
		n.t.Errorf("packing %s: %v", m.Name, err)
		return nil, err.Error()
	}
	return hexutil.Encode(packed), ""
}

// transferLog builds a Transfer log from -> to of wei at block.
func (n *fakeNode) transferLog(from, to common.Address, wei *big.Int, block uint64, hash string) chain.LogEntry {
	topic, err := n.desc.TransferTopic()
	require.NoError(n.t, err)
	return chain.LogEntry{
		Address:     n.desc.Address.Hex(),
		Topics:      []string{topic.Hex(), common.BytesToHash(from.Bytes()).Hex(), common.BytesToHash(to.Bytes()).Hex()},
		Data:        hexutil.Encode(common.BigToHash(wei).Bytes()),
		BlockNumber: hexutil.EncodeUint64(block),
		TxHash:      hash,
		LogIndex:    "0x0",
	}
}
