package routing

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/metrics"
	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
)

// Stitcher builds one continuous route from per-pair oracle segments.
//
// A failed segment is logged and skipped: its leg is marked as skipped and
// the totals keep accumulating from the segments that succeed. Only when
// every segment fails does BuildRoute return ErrNoRoute.
type Stitcher struct {
	oracle oracle.DistanceOracle
	opts   Options
	log    *zap.Logger
}

// NewStitcher creates a stitcher backed by the given oracle
func NewStitcher(o oracle.DistanceOracle, opts Options, log *zap.Logger) *Stitcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stitcher{oracle: o, opts: opts, log: log.Named("stitcher")}
}

// BuildRoute calls the oracle once per consecutive pair of ordered and merges
// the results. The first successful segment keeps its leading coordinate and
// instruction; later ones drop them since they repeat the previous segment's end.
func (s *Stitcher) BuildRoute(ctx context.Context, ordered []models.Waypoint, profile models.Profile) (*models.Route, error) {
	return s.build(ctx, newPacer(s.oracle, s.opts), ordered, profile)
}

func (s *Stitcher) build(ctx context.Context, p *pacer, ordered []models.Waypoint, profile models.Profile) (*models.Route, error) {
	if len(ordered) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInsufficientWaypoints, len(ordered))
	}

	route := &models.Route{
		Waypoints:    ordered,
		Coordinates:  orb.LineString{},
		Instructions: []models.Instruction{},
		Legs:         make([]models.Leg, 0, len(ordered)-1),
	}

	var lastErr error
	succeeded := 0
	for i := 0; i < len(ordered)-1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stitching cancelled: %w", err)
		}

		leg := models.Leg{From: i, To: i + 1}
		seg, err := p.route(ctx, ordered[i].Position(), ordered[i+1].Position(), profile)
		if err != nil {
			lastErr = err
			leg.Skipped = true
			leg.Reason = oracle.Kind(err)
			route.Legs = append(route.Legs, leg)
			metrics.SegmentsSkippedTotal.Inc()
			s.log.Warn("segment skipped",
				zap.Int("segment", i+1),
				zap.String("reason", leg.Reason),
				zap.Error(err))
			continue
		}

		leg.DistanceMeters = seg.DistanceMeters
		leg.DurationMillis = seg.DurationMillis
		route.Legs = append(route.Legs, leg)

		route.DistanceMeters += seg.DistanceMeters
		route.DurationMillis += seg.DurationMillis

		coords := seg.Coordinates
		instructions := seg.Instructions
		if succeeded > 0 {
			if len(coords) > 0 {
				coords = coords[1:]
			}
			if len(instructions) > 0 {
				instructions = instructions[1:]
			}
		}
		route.Coordinates = append(route.Coordinates, coords...)
		route.Instructions = append(route.Instructions, instructions...)
		succeeded++

		s.log.Debug("segment added",
			zap.Int("segment", i+1),
			zap.Float64("distance_m", seg.DistanceMeters),
			zap.Int("points", len(seg.Coordinates)))
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("%w: all %d segments failed: %w", ErrNoRoute, len(ordered)-1, lastErr)
	}

	s.log.Info("route stitched",
		zap.Int("segments", len(ordered)-1),
		zap.Int("skipped", len(ordered)-1-succeeded),
		zap.Float64("distance_m", route.DistanceMeters),
		zap.Int64("duration_ms", route.DurationMillis))
	return route, nil
}
