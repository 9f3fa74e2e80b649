package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
)

// Options tune how a single plan talks to the routing engine
type Options struct {
	// CallDelay is the pause between consecutive oracle calls of one plan.
	// Remote engines with rate limits need it; zero disables it.
	CallDelay time.Duration
	// CallTimeout bounds each oracle call. A timed out call counts as an
	// oracle failure.
	CallTimeout time.Duration
}

// pacer issues the oracle calls of one plan. It lives on the caller's stack
// and is never shared between plans.
type pacer struct {
	oracle oracle.DistanceOracle
	opts   Options
	calls  int
}

func newPacer(o oracle.DistanceOracle, opts Options) *pacer {
	return &pacer{oracle: o, opts: opts}
}

func (p *pacer) route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	if p.calls > 0 && p.opts.CallDelay > 0 {
		timer := time.NewTimer(p.opts.CallDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.SegmentResult{}, fmt.Errorf("%w: %w", oracle.ErrOracleUnavailable, ctx.Err())
		case <-timer.C:
		}
	}
	p.calls++

	if p.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.CallTimeout)
		defer cancel()
	}
	return p.oracle.Route(ctx, from, to, profile)
}
