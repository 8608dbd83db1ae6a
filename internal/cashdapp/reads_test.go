package cashdapp_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu      sync.Mutex
	balance *big.Int
	err     error
	reads   int
}

func (f *fakeReader) Name(context.Context) (string, error)   { return "XMRT Token", f.err }
func (f *fakeReader) Symbol(context.Context) (string, error) { return "XMRT", f.err }
func (f *fakeReader) TotalSupply(context.Context) (*big.Int, error) {
	return ether(21_000_000), f.err
}

func (f *fakeReader) BalanceOf(_ context.Context, _ common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeReader) Allowance(context.Context, common.Address, common.Address) (*big.Int, error) {
	return ether(1), f.err
}

func (f *fakeReader) CashDapp(_ context.Context, op common.Address) (*contract.CashDappInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &contract.CashDappInfo{Operator: op, TotalFiatOnRamped: ether(3), TotalFiatOffRamped: ether(1), TotalFeesCollected: big.NewInt(0)}, nil
}

func (f *fakeReader) balanceReads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// scriptedBlocks returns each block in turn, then repeats the last one.
type scriptedBlocks struct {
	mu     sync.Mutex
	blocks []uint64
	i      int
	err    error
}

func (s *scriptedBlocks) BlockNumber(context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	b := s.blocks[s.i]
	if s.i < len(s.blocks)-1 {
		s.i++
	}
	return b, nil
}

type fakeLogs struct {
	filters []chain.LogFilter
}

func (f *fakeLogs) GetLogs(_ context.Context, lf chain.LogFilter) ([]chain.LogEntry, error) {
	f.filters = append(f.filters, lf)
	return nil, nil
}

func readAdapter(t *testing.T, r *fakeReader, opts ...cashdapp.Option) (*cashdapp.Adapter, *notify.Recorder) {
	t.Helper()
	desc, err := contract.NewXMRT("")
	require.NoError(t, err)
	rec := &notify.Recorder{}
	opts = append(opts, cashdapp.WithNotifier(rec))
	return cashdapp.New(cashdapp.Session{Address: owner, ChainID: 1}, desc, r, opts...), rec
}

func TestReadsSucceedSilently(t *testing.T) {
	a, rec := readAdapter(t, &fakeReader{balance: ether(50)})
	ctx := context.Background()

	name, err := a.TokenName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XMRT Token", name)

	sym, err := a.TokenSymbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XMRT", sym)

	supply, err := a.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, ether(21_000_000), supply)

	info, err := a.CashDapp(ctx, dead)
	require.NoError(t, err)
	assert.Equal(t, dead, info.Operator)

	assert.Equal(t, 0, rec.Len())
}

func TestBalanceIsIdempotent(t *testing.T) {
	r := &fakeReader{balance: new(big.Int).Add(ether(50), big.NewInt(5e17))}
	a, _ := readAdapter(t, r)

	first, err := a.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "50.5", first)
	for i := 0; i < 5; i++ {
		again, err := a.Balance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBalanceNeedsSession(t *testing.T) {
	desc, err := contract.NewXMRT("")
	require.NoError(t, err)
	a := cashdapp.New(cashdapp.Session{}, desc, &fakeReader{balance: ether(1)})

	_, err = a.Balance(context.Background())
	assert.ErrorIs(t, err, cashdapp.ErrNotConnected)
}

func TestReadFailureNotifiesOnce(t *testing.T) {
	boom := errors.New("connection refused")
	a, rec := readAdapter(t, &fakeReader{err: boom})

	_, err := a.Balance(context.Background())
	assert.ErrorIs(t, err, boom)
	require.Equal(t, 1, rec.Len())
	n, _ := rec.Last()
	assert.True(t, n.Destructive())
	assert.Equal(t, "Failed to load balance. Please try again.", n.Description)
}

func TestWatchBalanceRefreshesOnNewBlocksOnly(t *testing.T) {
	r := &fakeReader{balance: ether(50)}
	blocks := &scriptedBlocks{blocks: []uint64{10, 10, 10, 11, 11}}
	a, rec := readAdapter(t, r, cashdapp.WithBlockSource(blocks))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []cashdapp.BalanceUpdate
	done := make(chan error, 1)
	go func() {
		done <- a.WatchBalance(ctx, 5*time.Millisecond, func(u cashdapp.BalanceUpdate) {
			mu.Lock()
			got = append(got, u)
			n := len(got)
			mu.Unlock()
			if n == 2 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(10), got[0].Block)
	assert.Equal(t, uint64(11), got[1].Block)
	assert.Equal(t, got[0].Formatted, got[1].Formatted, "unchanged state renders identically")
	assert.Equal(t, "50", got[0].Formatted)
	assert.Equal(t, 2, r.balanceReads(), "same block is not re-read")
	assert.Equal(t, 0, rec.Len(), "watch never notifies")
}

func TestWatchBalanceReportsErrors(t *testing.T) {
	blocks := &scriptedBlocks{err: errors.New("rpc down")}
	a, _ := readAdapter(t, &fakeReader{balance: ether(1)}, cashdapp.WithBlockSource(blocks))

	ctx, cancel := context.WithCancel(context.Background())
	var got cashdapp.BalanceUpdate
	err := a.WatchBalance(ctx, time.Hour, func(u cashdapp.BalanceUpdate) {
		got = u
		cancel()
	})
	require.NoError(t, err)
	assert.ErrorContains(t, got.Err, "rpc down")
}

func TestWatchBalanceRequiresBlockSource(t *testing.T) {
	a, _ := readAdapter(t, &fakeReader{balance: ether(1)})
	err := a.WatchBalance(context.Background(), time.Second, func(cashdapp.BalanceUpdate) {})
	assert.ErrorIs(t, err, cashdapp.ErrNoBlockSource)
}

func TestHistoryDefaultsRangeFromHead(t *testing.T) {
	logs := &fakeLogs{}
	blocks := &scriptedBlocks{blocks: []uint64{50_000}}
	a, _ := readAdapter(t, &fakeReader{balance: ether(1)}, cashdapp.WithBlockSource(blocks), cashdapp.WithLogs(logs))

	events, err := a.History(context.Background(), 0, 0, 10_000)
	require.NoError(t, err)
	assert.Empty(t, events)

	require.Len(t, logs.filters, 2, "one scan per direction")
	for _, f := range logs.filters {
		assert.Equal(t, uint64(40_000), f.FromBlock)
		assert.Equal(t, uint64(50_000), f.ToBlock)
	}
}

func TestHistoryRejectsInvertedRange(t *testing.T) {
	a, _ := readAdapter(t, &fakeReader{balance: ether(1)}, cashdapp.WithLogs(&fakeLogs{}))
	_, err := a.History(context.Background(), 20, 10, 0)
	assert.Error(t, err)
}
