// Package boundary loads a city outline and restricts POI sets to it.
package boundary

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/spatial"
)

// ErrNoPolygon is returned when a boundary document has no polygonal feature.
var ErrNoPolygon = errors.New("boundary has no polygon")

// Boundary is the bounding box of a city outline.
type Boundary struct {
	Bound orb.Bound
}

// LoadFile reads a GeoJSON FeatureCollection from path.
func LoadFile(path string) (*Boundary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	return Parse(raw)
}

// Parse takes the bbox of the first Polygon or MultiPolygon feature.
func Parse(raw []byte) (*Boundary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse boundary: %w", err)
	}
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			return &Boundary{Bound: g.Bound()}, nil
		}
	}
	return nil, ErrNoPolygon
}

// Contains reports whether the point lies inside the bbox, edges included.
func (b *Boundary) Contains(lat, lng float64) bool {
	return spatial.InBound(b.Bound, lat, lng)
}

// Filter keeps the POIs inside the bbox. A nil boundary keeps everything.
func (b *Boundary) Filter(pois []models.PointOfInterest) []models.PointOfInterest {
	if b == nil {
		return pois
	}
	kept := make([]models.PointOfInterest, 0, len(pois))
	for _, p := range pois {
		if b.Contains(p.Lat, p.Lng) {
			kept = append(kept, p)
		}
	}
	return kept
}
