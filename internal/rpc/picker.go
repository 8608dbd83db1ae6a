// Package rpc chooses which JSON-RPC node the dashboard talks to.
package rpc

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNoHealthyRPC is returned when every candidate node is down or lagging.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm names a node selection strategy.
type Algorithm string

const (
	// AlgorithmFastest prefers the lowest-latency node that is caught up.
	AlgorithmFastest Algorithm = "fastest"
	// AlgorithmFailover takes nodes in configured order.
	AlgorithmFailover Algorithm = "failover"
)

// A node more than this many blocks behind the best seen is stale.
const staleBlockThreshold = 3

// ParseAlgorithm maps a config value to an Algorithm; empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown RPC algorithm %q (want %s or %s)", s, AlgorithmFastest, AlgorithmFailover)
	}
}

// Endpoint is one node and what a probe learned about it. Healthy is only
// meaningful once Checked is set; unchecked nodes stay candidates.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
	Checked     bool
	Err         error
}

func (e *Endpoint) usable() bool { return !e.Checked || e.Healthy }

func (e *Endpoint) lagging(head uint64) bool {
	return head > e.BlockNumber && head-e.BlockNumber > staleBlockThreshold
}

// Pick returns the endpoint algo selects. The result points into endpoints.
func Pick(endpoints []Endpoint, algo Algorithm) (*Endpoint, error) {
	var candidates []*Endpoint
	for i := range endpoints {
		if endpoints[i].usable() {
			candidates = append(candidates, &endpoints[i])
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoHealthyRPC
	}
	if algo == AlgorithmFailover {
		return candidates[0], nil
	}

	var head uint64
	for _, e := range endpoints {
		head = max(head, e.BlockNumber)
	}
	candidates = slices.DeleteFunc(candidates, func(e *Endpoint) bool { return e.lagging(head) })
	if len(candidates) == 0 {
		return nil, ErrNoHealthyRPC
	}
	// Fastest first; ties go to the node further ahead.
	return slices.MinFunc(candidates, func(a, b *Endpoint) int {
		if c := cmp.Compare(a.Latency, b.Latency); c != 0 {
			return c
		}
		return cmp.Compare(b.BlockNumber, a.BlockNumber)
	}), nil
}
