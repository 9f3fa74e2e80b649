// Package heatmap turns POI sets into renderable density and rating surfaces.
package heatmap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jengzang/mapmaker-go/internal/models"
)

// ErrInvalidMetric is returned for metrics other than density and rating
var ErrInvalidMetric = errors.New("invalid metric")

// NoDataMessage marks an aggregation over an empty POI set
const NoDataMessage = "No data available for heatmap"

// NeutralRating is used for POIs without a positive rating
const NeutralRating = 3.0

// Metric selects what a heatmap point value means
type Metric string

const (
	MetricDensity Metric = "density"
	MetricRating  Metric = "rating"
)

// ParseMetric validates a metric name. An empty string selects rating.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricRating:
		return MetricRating, nil
	case MetricDensity:
		return MetricDensity, nil
	}
	return "", fmt.Errorf("%w: %q (expected density or rating)", ErrInvalidMetric, s)
}

type cellKey struct {
	lat, lng int64
}

type cellAcc struct {
	count   int
	name    string
	address string
}

// Density bins POIs into square cells keyed by round(coord/cellSize) and
// emits one point per non-empty cell at the cell's grid coordinates.
// The first POI seen in a cell supplies its sample name and address.
func Density(pois []models.PointOfInterest, grid GridSpec) []models.HeatmapPoint {
	cell := grid.CellSizeDegrees
	if cell <= 0 {
		cell = CellSizeDefault
	}

	cells := make(map[cellKey]*cellAcc)
	for _, p := range pois {
		k := cellKey{
			lat: int64(math.Round(p.Lat / cell)),
			lng: int64(math.Round(p.Lng / cell)),
		}
		acc, ok := cells[k]
		if !ok {
			acc = &cellAcc{name: p.Name, address: firstNonEmpty(p.Address, p.Vicinity)}
			cells[k] = acc
		}
		acc.count++
	}

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lat != keys[j].lat {
			return keys[i].lat < keys[j].lat
		}
		return keys[i].lng < keys[j].lng
	})

	points := make([]models.HeatmapPoint, 0, len(keys))
	for _, k := range keys {
		acc := cells[k]
		points = append(points, models.HeatmapPoint{
			Lat:     float64(k.lat) * cell,
			Lng:     float64(k.lng) * cell,
			Value:   float64(acc.count),
			Count:   acc.count,
			Name:    acc.name,
			Address: acc.address,
		})
	}
	return points
}

// Rating emits one point per POI valued by its rating. Missing or
// non-positive ratings get NeutralRating so that every POI is rendered.
func Rating(pois []models.PointOfInterest) []models.HeatmapPoint {
	points := make([]models.HeatmapPoint, 0, len(pois))
	for _, p := range pois {
		points = append(points, models.HeatmapPoint{
			Lat:     p.Lat,
			Lng:     p.Lng,
			Value:   ratingOrNeutral(p),
			Name:    p.Name,
			Address: firstNonEmpty(p.Address, p.Vicinity),
		})
	}
	return points
}

// Aggregate runs the selected metric over pois. An empty input is not an
// error: the response carries no points and the no-data marker.
func Aggregate(pois []models.PointOfInterest, metric Metric, category string) models.HeatmapResponse {
	resp := models.HeatmapResponse{
		Points: []models.HeatmapPoint{},
		Metric: string(metric),
	}
	if len(pois) == 0 {
		resp.NoData = true
		resp.Message = NoDataMessage
		return resp
	}

	switch metric {
	case MetricDensity:
		grid := GridFor(category)
		resp.CellSize = grid.CellSizeDegrees
		resp.Points = Density(pois, grid)
	default:
		resp.Points = Rating(pois)
	}

	resp.Count = len(resp.Points)
	resp.MinValue, resp.MaxValue = valueRange(resp.Points)
	return resp
}

func ratingOrNeutral(p models.PointOfInterest) float64 {
	if p.HasRating() {
		return *p.Rating
	}
	return NeutralRating
}

func valueRange(points []models.HeatmapPoint) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	return lo, hi
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
