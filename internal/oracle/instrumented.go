package oracle

import (
	"context"
	"time"

	"github.com/jengzang/mapmaker-go/internal/metrics"
	"github.com/jengzang/mapmaker-go/internal/models"
)

type instrumented struct {
	next DistanceOracle
}

// Instrument wraps an oracle with call counters and a latency histogram
func Instrument(next DistanceOracle) DistanceOracle {
	return instrumented{next: next}
}

func (o instrumented) Route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	start := time.Now()
	seg, err := o.next.Route(ctx, from, to, profile)
	metrics.OracleCallDuration.WithLabelValues(profile.String()).Observe(time.Since(start).Seconds())
	metrics.OracleCallsTotal.WithLabelValues(profile.String(), Kind(err)).Inc()
	return seg, err
}
