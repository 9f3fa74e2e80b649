package service

import (
	"context"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/routing"
)

// RouteService handles route planning use cases
type RouteService struct {
	planner *routing.Planner
	mode    string
}

// NewRouteService creates a route service around planner. mode is the
// configured routing mode and is only reported.
func NewRouteService(planner *routing.Planner, mode string) *RouteService {
	return &RouteService{planner: planner, mode: mode}
}

// PlanRoute builds a multi-waypoint route
func (s *RouteService) PlanRoute(ctx context.Context, waypoints []models.Waypoint, profile string, optimize bool) (*models.Route, error) {
	return s.planner.Plan(ctx, routing.PlanRequest{
		Waypoints: waypoints,
		Profile:   profile,
		Optimize:  optimize,
	})
}

// RouteSegment routes a single pair of points
func (s *RouteService) RouteSegment(ctx context.Context, from, to models.LatLng, profile string) (models.SegmentResult, error) {
	return s.planner.Segment(ctx, from, to, profile)
}

// Mode reports the routing mode ("api" or "local")
func (s *RouteService) Mode() string {
	return s.mode
}
