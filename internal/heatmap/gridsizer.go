package heatmap

import "strings"

// Cell sizes in degrees
const (
	CellSizeDense         = 0.0015 // ~150 m, dense footprint venues
	CellSizeInstitutional = 0.003  // ~300 m, schools and hospitals
	CellSizeDefault       = 0.002  // ~200 m
)

// GridSpec describes the density grid for one aggregation
type GridSpec struct {
	CellSizeDegrees float64
}

// CellSize maps a POI category to the density grid cell size
func CellSize(category string) float64 {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "cafe", "restaurant", "bar":
		return CellSizeDense
	case "school", "hospital":
		return CellSizeInstitutional
	default:
		return CellSizeDefault
	}
}

// GridFor returns the density grid for a category
func GridFor(category string) GridSpec {
	return GridSpec{CellSizeDegrees: CellSize(category)}
}
