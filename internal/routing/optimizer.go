package routing

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/metrics"
	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
	"github.com/jengzang/mapmaker-go/internal/spatial"
)

// Optimizer orders an unordered waypoint set with a nearest-neighbour
// heuristic. The result is a permutation of the input, not an optimal tour.
type Optimizer struct {
	oracle oracle.DistanceOracle
	opts   Options
	log    *zap.Logger
}

// NewOptimizer creates an optimizer backed by the given oracle
func NewOptimizer(o oracle.DistanceOracle, opts Options, log *zap.Logger) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{oracle: o, opts: opts, log: log.Named("optimizer")}
}

// OptimizeOrder returns the waypoints reordered starting from waypoints[0].
// At each step the unvisited waypoint with the strictly smallest oracle
// distance from the current one is chosen; ties go to the lowest input index.
// Sets of one or two waypoints are returned unchanged.
func (o *Optimizer) OptimizeOrder(ctx context.Context, waypoints []models.Waypoint, profile models.Profile) ([]models.Waypoint, error) {
	return o.optimize(ctx, newPacer(o.oracle, o.opts), waypoints, profile)
}

func (o *Optimizer) optimize(ctx context.Context, p *pacer, waypoints []models.Waypoint, profile models.Profile) ([]models.Waypoint, error) {
	n := len(waypoints)
	if n == 0 {
		return nil, fmt.Errorf("%w: need at least 1 waypoint to order", ErrInsufficientWaypoints)
	}
	if n <= 2 {
		return append([]models.Waypoint(nil), waypoints...), nil
	}

	visited := make([]bool, n)
	visited[0] = true
	current := 0
	ordered := make([]models.Waypoint, 0, n)
	ordered = append(ordered, waypoints[0])

	for len(ordered) < n {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ordering cancelled: %w", err)
		}

		best := -1
		bestDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := o.rankDistance(ctx, p, waypoints[current], waypoints[j], profile)
			if best == -1 || d < bestDist {
				best = j
				bestDist = d
			}
		}

		visited[best] = true
		ordered = append(ordered, waypoints[best])
		o.log.Debug("next waypoint selected",
			zap.Int("from", current),
			zap.Int("to", best),
			zap.Float64("distance_m", bestDist))
		current = best
	}

	return ordered, nil
}

// rankDistance is the distance used for ordering only. Oracle failures and
// unusable answers fall back to the great-circle distance.
func (o *Optimizer) rankDistance(ctx context.Context, p *pacer, from, to models.Waypoint, profile models.Profile) float64 {
	seg, err := p.route(ctx, from.Position(), to.Position(), profile)
	if err == nil && !math.IsNaN(seg.DistanceMeters) && seg.DistanceMeters >= 0 {
		return seg.DistanceMeters
	}

	fallback := spatial.HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng)
	metrics.HaversineFallbacksTotal.Inc()
	o.log.Warn("oracle failed while ranking, using haversine distance",
		zap.String("reason", oracle.Kind(err)),
		zap.Error(err),
		zap.Float64("haversine_m", fallback))
	return fallback
}
