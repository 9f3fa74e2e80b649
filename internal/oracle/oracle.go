// Package oracle defines the narrow contract the planner uses to reach a
// routing engine, together with the engines the service ships with.
package oracle

import (
	"context"
	"errors"

	"github.com/jengzang/mapmaker-go/internal/models"
)

var (
	// ErrOracleUnavailable covers transport failures, timeouts and engine errors.
	ErrOracleUnavailable = errors.New("routing engine unavailable")
	// ErrNoPathFound means the engine answered but could not connect the points.
	ErrNoPathFound = errors.New("no path found")
)

// DistanceOracle converts two points and a profile into a travel distance,
// duration and path geometry. Calls block until the engine answers or ctx ends.
type DistanceOracle interface {
	Route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error)
}

// Func adapts a plain function to DistanceOracle
type Func func(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error)

// Route calls f
func (f Func) Route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	return f(ctx, from, to, profile)
}

// Kind returns a short stable label for an oracle error, used in logs,
// metrics and API payloads.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoPathFound):
		return "no_path_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "oracle_unavailable"
	}
}
