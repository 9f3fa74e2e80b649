package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/models"
)

// PoiWriter is the write side of the POI repository
type PoiWriter interface {
	Upsert(ctx context.Context, poi *models.PointOfInterest) error
}

// ImportResult summarizes one import run
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService loads POIs from GeoJSON into the store
type ImportService struct {
	store PoiWriter
	log   *zap.Logger
}

// NewImportService creates an import service
func NewImportService(store PoiWriter, log *zap.Logger) *ImportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImportService{store: store, log: log.Named("import")}
}

// ImportGeoJSON upserts every Point feature of a FeatureCollection.
// Properties read: name, type, rating, place_id, vicinity, address.
// defaultType applies to features without a type; features that still
// have no type or no name are skipped.
func (s *ImportService) ImportGeoJSON(ctx context.Context, r io.Reader, defaultType string) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse geojson: %w", err)
	}

	var res ImportResult
	for i, f := range fc.Features {
		poi, ok := featureToPoi(f, defaultType)
		if !ok {
			s.log.Debug("skipping feature", zap.Int("index", i))
			res.Skipped++
			continue
		}
		if err := s.store.Upsert(ctx, &poi); err != nil {
			return res, fmt.Errorf("feature %d: %w", i, err)
		}
		res.Imported++
	}

	s.log.Info("points of interest imported",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func featureToPoi(f *geojson.Feature, defaultType string) (models.PointOfInterest, bool) {
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return models.PointOfInterest{}, false
	}

	props := f.Properties
	poi := models.PointOfInterest{
		Name:     props.MustString("name", ""),
		Type:     strings.ToLower(props.MustString("type", defaultType)),
		PlaceID:  props.MustString("place_id", ""),
		Vicinity: props.MustString("vicinity", ""),
		Address:  props.MustString("address", ""),
		Lat:      pt.Lat(),
		Lng:      pt.Lon(),
	}
	if poi.Name == "" || poi.Type == "" {
		return models.PointOfInterest{}, false
	}
	if rating, ok := props["rating"].(float64); ok {
		poi.Rating = &rating
	}
	if poi.Address == "" {
		poi.Address = poi.Vicinity
	}
	return poi, true
}
