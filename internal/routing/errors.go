package routing

import "errors"

var (
	// ErrInsufficientWaypoints is returned when a plan has too few points
	ErrInsufficientWaypoints = errors.New("insufficient waypoints")
	// ErrNoRoute is returned when every segment of a route failed
	ErrNoRoute = errors.New("no route could be built")
)
