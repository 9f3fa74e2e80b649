package routing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/metrics"
	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
)

// PlanRequest is one route planning call
type PlanRequest struct {
	Waypoints []models.Waypoint
	Profile   string
	// Optimize reorders the waypoints (keeping the first as start) before stitching
	Optimize bool
}

// Planner validates a request, optionally orders the waypoints and stitches
// the route. It holds no per-request state and is safe for concurrent use.
type Planner struct {
	optimizer *Optimizer
	stitcher  *Stitcher
	oracle    oracle.DistanceOracle
	opts      Options
	log       *zap.Logger
}

// NewPlanner wires an optimizer and a stitcher around one oracle
func NewPlanner(o oracle.DistanceOracle, opts Options, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		optimizer: NewOptimizer(o, opts, log),
		stitcher:  NewStitcher(o, opts, log),
		oracle:    o,
		opts:      opts,
		log:       log.Named("planner"),
	}
}

// Plan builds a route for req
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*models.Route, error) {
	profile, err := models.ParseProfile(req.Profile)
	if err != nil {
		return nil, err
	}
	if len(req.Waypoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInsufficientWaypoints, len(req.Waypoints))
	}

	pc := newPacer(p.oracle, p.opts)

	ordered := req.Waypoints
	if req.Optimize {
		ordered, err = p.optimizer.optimize(ctx, pc, req.Waypoints, profile)
		if err != nil {
			metrics.RoutesPlannedTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
	}

	route, err := p.stitcher.build(ctx, pc, ordered, profile)
	if err != nil {
		metrics.RoutesPlannedTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	outcome := "complete"
	if route.SkippedLegs() > 0 {
		outcome = "partial"
	}
	metrics.RoutesPlannedTotal.WithLabelValues(outcome).Inc()

	p.log.Info("route planned",
		zap.String("profile", profile.String()),
		zap.Int("waypoints", len(ordered)),
		zap.Bool("optimized", req.Optimize),
		zap.String("outcome", outcome),
		zap.Int("oracle_calls", pc.calls))
	return route, nil
}

// Segment routes a single pair of points without stitching
func (p *Planner) Segment(ctx context.Context, from, to models.LatLng, profileName string) (models.SegmentResult, error) {
	profile, err := models.ParseProfile(profileName)
	if err != nil {
		return models.SegmentResult{}, err
	}
	return newPacer(p.oracle, p.opts).route(ctx, from, to, profile)
}
