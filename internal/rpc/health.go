package rpc

import (
	"context"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
)

// probeTimeout caps a single ping.
const probeTimeout = 5 * time.Second

// HealthCheck pings url once. The returned Endpoint is always Checked; it is
// Healthy when the ping succeeded and, if head is non-zero, the node is not
// lagging head. The error is the ping error, if any.
func HealthCheck(ctx context.Context, url string, head uint64) (Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	ep := Endpoint{URL: url, Checked: true}
	ep.Latency, ep.BlockNumber, ep.Err = chain.NewEVMClient(url).Ping(ctx)
	ep.Healthy = ep.Err == nil && !ep.lagging(head)
	return ep, ep.Err
}
