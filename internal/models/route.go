package models

import "github.com/paulmach/orb"

// Instruction is a single navigation step returned by the routing engine
type Instruction struct {
	Text           string  `json:"text"`
	DistanceMeters float64 `json:"distanceMeters"`
	DurationMillis int64   `json:"durationMillis"`
	Sign           int     `json:"sign,omitempty"`
}

// SegmentResult is the answer of one distance oracle call between two points.
// Coordinates are in [lon, lat] order.
type SegmentResult struct {
	DistanceMeters float64
	DurationMillis int64
	Coordinates    orb.LineString
	Instructions   []Instruction
}

// Leg describes one consecutive waypoint pair of a stitched route
type Leg struct {
	From           int     `json:"from"` // index into Route.Waypoints
	To             int     `json:"to"`
	DistanceMeters float64 `json:"distanceMeters"`
	DurationMillis int64   `json:"durationMillis"`
	Skipped        bool    `json:"skipped,omitempty"`
	Reason         string  `json:"reason,omitempty"` // oracle_unavailable, no_path_found
}

// Route is the stitched result of a multi-waypoint plan
type Route struct {
	Waypoints      []Waypoint     `json:"waypoints"`
	DistanceMeters float64        `json:"distanceMeters"`
	DurationMillis int64          `json:"durationMillis"`
	Coordinates    orb.LineString `json:"-"`
	Instructions   []Instruction  `json:"instructions"`
	Legs           []Leg          `json:"legs"`
}

// SkippedLegs returns how many legs were dropped because the oracle failed
func (r *Route) SkippedLegs() int {
	n := 0
	for _, leg := range r.Legs {
		if leg.Skipped {
			n++
		}
	}
	return n
}
