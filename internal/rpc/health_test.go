package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evmRPCServer creates an httptest server that responds to eth_blockNumber.
func evmRPCServer(t *testing.T, blockNum uint64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, blockNum)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// HealthCheck
// ---------------------------------------------------------------------------

func TestHealthCheckHealthy(t *testing.T) {
	srv := evmRPCServer(t, 1000)

	ep, err := HealthCheck(context.Background(), srv.URL, 0)
	require.NoError(t, err)

	assert.True(t, ep.Healthy)
	assert.True(t, ep.Checked)
	assert.Equal(t, srv.URL, ep.URL)
	assert.Equal(t, uint64(1000), ep.BlockNumber)
	assert.Greater(t, ep.Latency, time.Duration(0), "latency should be measured")
}

func TestHealthCheckUnreachable(t *testing.T) {
	ep, err := HealthCheck(context.Background(), "http://127.0.0.1:1", 0)
	assert.Error(t, err)
	assert.False(t, ep.Healthy)
	assert.Error(t, ep.Err)
}

func TestHealthCheckStaleBehind(t *testing.T) {
	srv := evmRPCServer(t, 990)

	ep, err := HealthCheck(context.Background(), srv.URL, 1000)
	require.NoError(t, err)
	assert.False(t, ep.Healthy, "10 blocks behind must be unhealthy")
}

func TestHealthCheckJustWithinThreshold(t *testing.T) {
	srv := evmRPCServer(t, 1000-staleBlockThreshold)

	ep, err := HealthCheck(context.Background(), srv.URL, 1000)
	require.NoError(t, err)
	assert.True(t, ep.Healthy)
}

func TestHealthCheckCancelledContext(t *testing.T) {
	srv := evmRPCServer(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ep, err := HealthCheck(ctx, srv.URL, 0)
	assert.Error(t, err)
	assert.False(t, ep.Healthy)
}

// ---------------------------------------------------------------------------
// Benchmark / BestEVM
// ---------------------------------------------------------------------------

func TestBenchmarkPreservesOrderAndMarksStale(t *testing.T) {
	fresh := evmRPCServer(t, 1000)
	stale := evmRPCServer(t, 900)
	dead := "http://127.0.0.1:1"

	eps := Benchmark(context.Background(), []string{stale.URL, dead, fresh.URL})
	require.Len(t, eps, 3)

	assert.Equal(t, stale.URL, eps[0].URL)
	assert.False(t, eps[0].Healthy, "100 blocks behind the best")
	assert.False(t, eps[1].Healthy)
	assert.True(t, eps[2].Healthy)
	for _, ep := range eps {
		assert.True(t, ep.Checked)
	}
}

func TestBestEVMPicksHealthy(t *testing.T) {
	good := evmRPCServer(t, 500)

	url, err := BestEVM(context.Background(), []string{"http://127.0.0.1:1", good.URL}, AlgorithmFailover, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, good.URL, url)
}

func TestBestEVMSingleURL(t *testing.T) {
	url, err := BestEVM(context.Background(), []string{"http://only"}, AlgorithmFastest, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "http://only", url)
}

func TestBestEVMNoURLs(t *testing.T) {
	_, err := BestEVM(context.Background(), nil, AlgorithmFastest, time.Second)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestEVMAllDead(t *testing.T) {
	_, err := BestEVM(context.Background(), []string{"http://127.0.0.1:1", "http://127.0.0.1:2"}, AlgorithmFastest, 5*time.Second)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}
