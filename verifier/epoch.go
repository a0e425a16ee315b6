package verifier

import (
	"context"
	"time"
)

// ChainClient reads the current epoch from a chain endpoint. The production
// implementation lives in the chain package; tests substitute a fake.
type ChainClient interface {
	CurrentEpoch(ctx context.Context, endpoint string) (uint64, error)
}

// EpochResolver determines the epoch a proof is checked against: a
// caller-supplied epoch is used verbatim, otherwise the chain is queried
// with a bounded timeout and retry budget. This is the only stage of the
// pipeline that performs I/O.
type EpochResolver struct {
	client    ChainClient
	endpoints map[Network]string
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
}

// NewEpochResolver builds a resolver over the given endpoints. Non-positive
// settings fall back to 10s total timeout, 3 attempts, 200ms initial
// backoff.
func NewEpochResolver(client ChainClient, endpoints map[Network]string, timeout time.Duration, attempts int) *EpochResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if attempts <= 0 {
		attempts = 3
	}
	return &EpochResolver{
		client:    client,
		endpoints: endpoints,
		timeout:   timeout,
		attempts:  attempts,
		backoff:   200 * time.Millisecond,
	}
}

// Resolve returns the explicit epoch when present. The caller accepts
// responsibility for staleness; no chain call is made to validate it.
func (r *EpochResolver) Resolve(ctx context.Context, network Network, explicit *uint64) (uint64, *Failure) {
	if explicit != nil {
		return *explicit, nil
	}

	endpoint, ok := r.endpoints[network]
	if !ok {
		endpoint = network.DefaultFullnodeURL()
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var lastErr error
	delay := r.backoff
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, failf(FailureEpochFetch, "epoch query for %s: %v", network, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
		epoch, err := r.client.CurrentEpoch(ctx, endpoint)
		if err == nil {
			return epoch, nil
		}
		lastErr = err
	}
	return 0, failf(FailureEpochFetch, "epoch query for %s failed after %d attempts: %v", network, r.attempts, lastErr)
}
