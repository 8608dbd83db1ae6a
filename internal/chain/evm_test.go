package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type capturedRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     int               `json:"id"`
}

// rpcMock serves a fixed JSON-RPC result per method; unknown methods get an
// RPC error. Every decoded request is appended to *seen when seen != nil.
func rpcMock(t *testing.T, responses map[string]interface{}, seen *[]capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if seen != nil {
			*seen = append(*seen, req)
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rpcBadJSON(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not valid json`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// simple reads
// ---------------------------------------------------------------------------

func TestBlockNumber(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x10"}, nil)
	n, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), n)
}

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0xa4b1"}, nil)
	id, err := NewEVMClient(srv.URL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42161), id.Int64())
}

func TestGasPrice(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_gasPrice": "0x3b9aca00"}, nil)
	gp, err := NewEVMClient(srv.URL).GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000_000), gp)
}

func TestPendingNonceUsesPendingTag(t *testing.T) {
	var seen []capturedRequest
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionCount": "0x7"}, &seen)

	addr := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	n, err := NewEVMClient(srv.URL).PendingNonce(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)

	require.Len(t, seen, 1)
	require.Len(t, seen[0].Params, 2)
	assert.JSONEq(t, `"pending"`, string(seen[0].Params[1]))
}

func TestRPCErrorIsReturned(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{}, nil)
	_, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.Error(t, err)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
}

func TestMalformedResponse(t *testing.T) {
	srv := rpcBadJSON(t)
	_, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	assert.ErrorContains(t, err, "decoding response")
}

func TestUnreachableEndpoint(t *testing.T) {
	_, err := NewEVMClient("http://127.0.0.1:1").BlockNumber(context.Background())
	assert.ErrorContains(t, err, "RPC request failed")
}

// ---------------------------------------------------------------------------
// calls and transactions
// ---------------------------------------------------------------------------

func TestCallContractEncodesMessage(t *testing.T) {
	var seen []capturedRequest
	srv := rpcMock(t, map[string]interface{}{"eth_call": "0x0000000000000000000000000000000000000000000000000000000000000001"}, &seen)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	out, err := NewEVMClient(srv.URL).CallContract(context.Background(), CallMsg{
		To:   to,
		Data: []byte{0x70, 0xa0, 0x82, 0x31},
	})
	require.NoError(t, err)
	assert.Len(t, out, 32)
	assert.Equal(t, byte(1), out[31])

	require.Len(t, seen, 1)
	var arg map[string]string
	require.NoError(t, json.Unmarshal(seen[0].Params[0], &arg))
	assert.Equal(t, to.Hex(), arg["to"])
	assert.Equal(t, "0x70a08231", arg["data"])
	_, hasFrom := arg["from"]
	assert.False(t, hasFrom)
	_, hasValue := arg["value"]
	assert.False(t, hasValue)
}

func TestEstimateGasIncludesValue(t *testing.T) {
	var seen []capturedRequest
	srv := rpcMock(t, map[string]interface{}{"eth_estimateGas": "0x5208"}, &seen)

	gas, err := NewEVMClient(srv.URL).EstimateGas(context.Background(), CallMsg{
		From:  common.HexToAddress("0x1111111111111111111111111111111111111111"),
		To:    common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Value: big.NewInt(255),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)

	var arg map[string]string
	require.NoError(t, json.Unmarshal(seen[0].Params[0], &arg))
	assert.Equal(t, "0xff", arg["value"])
	assert.NotEmpty(t, arg["from"])
}

func TestSendRawTransaction(t *testing.T) {
	var seen []capturedRequest
	hash := "0xabc0000000000000000000000000000000000000000000000000000000000def"
	srv := rpcMock(t, map[string]interface{}{"eth_sendRawTransaction": hash}, &seen)

	got, err := NewEVMClient(srv.URL).SendRawTransaction(context.Background(), []byte{0x02, 0xf8})
	require.NoError(t, err)
	assert.Equal(t, hash, got)
	assert.JSONEq(t, `"0x02f8"`, string(seen[0].Params[0]))
}

func TestTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil}, nil)
	r, err := NewEVMClient(srv.URL).TransactionReceipt(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestWaitForReceiptSuccess(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]string{"status": "0x1", "blockNumber": "0x64", "gasUsed": "0x5208"},
	}, nil)
	r, err := NewEVMClient(srv.URL).WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), r.BlockNumber)
	assert.Equal(t, uint64(21000), r.GasUsed)
}

func TestWaitForReceiptReverted(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]string{"status": "0x0", "blockNumber": "0x64", "gasUsed": "0x5208"},
	}, nil)
	_, err := NewEVMClient(srv.URL).WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond, time.Second)
	assert.ErrorContains(t, err, "reverted")
}

func TestWaitForReceiptTimesOut(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil}, nil)
	_, err := NewEVMClient(srv.URL).WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetLogsBuildsFilter(t *testing.T) {
	var seen []capturedRequest
	srv := rpcMock(t, map[string]interface{}{
		"eth_getLogs": []map[string]interface{}{
			{"address": "0x01", "topics": []string{"0xaa"}, "data": "0x", "blockNumber": "0x10", "transactionHash": "0xbb", "logIndex": "0x0"},
		},
	}, &seen)

	topic := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	logs, err := NewEVMClient(srv.URL).GetLogs(context.Background(), LogFilter{
		Address:   common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
		Topics:    [][]common.Hash{{topic}, nil},
		FromBlock: 10,
		ToBlock:   20,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "0xbb", logs[0].TxHash)

	var filter map[string]interface{}
	require.NoError(t, json.Unmarshal(seen[0].Params[0], &filter))
	assert.Equal(t, "0xa", filter["fromBlock"])
	assert.Equal(t, "0x14", filter["toBlock"])
	topics := filter["topics"].([]interface{})
	assert.Equal(t, topic.Hex(), topics[0])
	assert.Nil(t, topics[1])
}

func TestPing(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x2a"}, nil)
	latency, block, err := NewEVMClient(srv.URL).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), block)
	assert.Greater(t, latency, time.Duration(0))
}
