package rpc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxParallelProbes bounds concurrent pings per benchmark.
const maxParallelProbes = 8

// Benchmark health-checks every URL in parallel. The result has one
// Endpoint per URL, in input order, all with Checked set.
func Benchmark(ctx context.Context, urls []string) []Endpoint {
	endpoints := make([]Endpoint, len(urls))

	var g errgroup.Group
	g.SetLimit(maxParallelProbes)
	for i, url := range urls {
		g.Go(func() error {
			ep, _ := HealthCheck(ctx, url, 0)
			endpoints[i] = ep
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	markStale(endpoints)
	return endpoints
}

// markStale flags healthy endpoints lagging the best block.
func markStale(endpoints []Endpoint) {
	var best uint64
	for _, e := range endpoints {
		if e.Healthy && e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	for i := range endpoints {
		e := &endpoints[i]
		if e.Healthy && e.lagging(best) {
			e.Healthy = false
		}
	}
}

// BestEVM benchmarks urls and returns the best endpoint URL using algo.
// A single URL is returned without probing.
func BestEVM(ctx context.Context, urls []string, algo Algorithm, timeout time.Duration) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	winner, err := Pick(Benchmark(ctx, urls), algo)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
