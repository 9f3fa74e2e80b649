package heatmap

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/spatial"
)

// Smoothed grid defaults, tuned for a city-sized extent
const (
	DefaultGridSize  = 50
	DefaultRadius    = 0.003 // degrees
	DefaultThreshold = 0.1
	DefaultEdgeSteps = 4
)

// DefaultBound covers Vitebsk
var DefaultBound = orb.Bound{
	Min: orb.Point{30.1833, 55.1532},
	Max: orb.Point{30.3092, 55.2308},
}

// SmoothedGrid configures the kernel-smoothed heatmap
type SmoothedGrid struct {
	Bound     orb.Bound
	Size      int     // cells per side
	Radius    float64 // cutoff radius and kernel bandwidth, degrees
	Threshold float64 // cells with intensity at or below are omitted
	Steps     int     // subdivisions per cell edge
}

// DefaultSmoothedGrid returns the standard 50x50 grid over DefaultBound
func DefaultSmoothedGrid() SmoothedGrid {
	return SmoothedGrid{
		Bound:     DefaultBound,
		Size:      DefaultGridSize,
		Radius:    DefaultRadius,
		Threshold: DefaultThreshold,
		Steps:     DefaultEdgeSteps,
	}
}

func (g SmoothedGrid) withDefaults() SmoothedGrid {
	if g.Size <= 0 {
		g.Size = DefaultGridSize
	}
	if g.Radius <= 0 {
		g.Radius = DefaultRadius
	}
	if g.Steps <= 0 {
		g.Steps = DefaultEdgeSteps
	}
	if g.Bound.IsEmpty() {
		g.Bound = DefaultBound
	}
	return g
}

// CellStats is the kernel estimate at one cell center
type CellStats struct {
	Count     int     // POIs within the radius
	Weight    float64 // sum of kernel weights
	AvgRating float64 // kernel-weighted average rating
	Intensity float64 // in [0, 1]
}

// Intensity combines how many POIs are near and how well they are rated:
// 0.7 * count/5 + 0.3 * rating/5, clamped to [0, 1].
func Intensity(count int, avgRating float64) float64 {
	v := 0.7*(float64(count)/5) + 0.3*(avgRating/5)
	return math.Max(0, math.Min(1, v))
}

// Estimate evaluates the Gaussian kernel at (lat, lng). POIs farther than
// radius are ignored; weight = exp(-d^2 / (2 r^2)).
func Estimate(lat, lng float64, pois []models.PointOfInterest, radius float64) CellStats {
	var stats CellStats
	var weighted float64
	for _, p := range pois {
		d := spatial.PlanarDistance(lat, lng, p.Lat, p.Lng)
		if d > radius {
			continue
		}
		w := math.Exp(-(d * d) / (2 * radius * radius))
		stats.Count++
		stats.Weight += w
		weighted += ratingOrNeutral(p) * w
	}
	if stats.Count == 0 {
		return stats
	}
	stats.AvgRating = weighted / stats.Weight
	stats.Intensity = Intensity(stats.Count, stats.AvgRating)
	return stats
}

// Smoothed sweeps grid over pois and returns one polygon feature per visible
// cell. An empty POI set yields an empty collection flagged with noData.
func Smoothed(pois []models.PointOfInterest, grid SmoothedGrid) *geojson.FeatureCollection {
	grid = grid.withDefaults()
	fc := geojson.NewFeatureCollection()
	if len(pois) == 0 {
		fc.ExtraMembers = geojson.Properties{
			"noData":  true,
			"message": NoDataMessage,
		}
		return fc
	}

	minLat, minLng := grid.Bound.Min.Lat(), grid.Bound.Min.Lon()
	latStep := (grid.Bound.Max.Lat() - minLat) / float64(grid.Size)
	lngStep := (grid.Bound.Max.Lon() - minLng) / float64(grid.Size)

	for i := 0; i < grid.Size; i++ {
		for j := 0; j < grid.Size; j++ {
			cell := orb.Bound{
				Min: orb.Point{minLng + float64(j)*lngStep, minLat + float64(i)*latStep},
				Max: orb.Point{minLng + float64(j+1)*lngStep, minLat + float64(i+1)*latStep},
			}
			center := cell.Center()

			stats := Estimate(center.Lat(), center.Lon(), pois, grid.Radius)
			if stats.Intensity <= grid.Threshold {
				continue
			}

			f := geojson.NewFeature(CellPolygon(cell, grid.Steps))
			f.Properties = geojson.Properties{
				"count":     stats.Count,
				"rating":    stats.AvgRating,
				"weight":    stats.Weight,
				"intensity": stats.Intensity,
			}
			fc.Append(f)
		}
	}
	return fc
}

// CellPolygon outlines a cell with every edge split into steps pieces,
// walking west edge north, north edge east, east edge south, south edge west.
// The ring is closed.
func CellPolygon(b orb.Bound, steps int) orb.Polygon {
	minLng, minLat := b.Min.Lon(), b.Min.Lat()
	maxLng, maxLat := b.Max.Lon(), b.Max.Lat()
	s := float64(steps)

	ring := make(orb.Ring, 0, 4*(steps+1))
	for i := 0; i <= steps; i++ {
		ring = append(ring, orb.Point{minLng, minLat + (maxLat-minLat)*float64(i)/s})
	}
	for i := 0; i <= steps; i++ {
		ring = append(ring, orb.Point{minLng + (maxLng-minLng)*float64(i)/s, maxLat})
	}
	for i := steps; i >= 0; i-- {
		ring = append(ring, orb.Point{maxLng, minLat + (maxLat-minLat)*float64(i)/s})
	}
	for i := steps; i >= 0; i-- {
		ring = append(ring, orb.Point{minLng + (maxLng-minLng)*float64(i)/s, minLat})
	}
	return orb.Polygon{ring}
}
