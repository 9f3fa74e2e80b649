package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/boundary"
	"github.com/jengzang/mapmaker-go/internal/heatmap"
	"github.com/jengzang/mapmaker-go/internal/metrics"
	"github.com/jengzang/mapmaker-go/internal/models"
)

// ErrUnknownType is returned for a POI type the heatmap endpoints do not serve
var ErrUnknownType = errors.New("unknown place type")

// TypeAll selects every stored POI
const TypeAll = "all"

// typeAliases maps the plural path names to stored POI types
var typeAliases = map[string]string{
	"restaurants": "restaurant",
	"bars":        "bar",
	"cafes":       "cafe",
	"banks":       "bank",
	"pharmacy":    "pharmacy",
	"gym":         "gym",
	TypeAll:       TypeAll,
}

// ResolveType maps a path alias to a stored POI type
func ResolveType(alias string) (string, error) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, alias)
	}
	return t, nil
}

// PoiStore is the read side of the POI repository
type PoiStore interface {
	ListByType(ctx context.Context, poiType string) ([]models.PointOfInterest, error)
	ListAll(ctx context.Context) ([]models.PointOfInterest, error)
	CountByType(ctx context.Context, poiType string) (int64, error)
}

// HeatmapService handles heatmap use cases
type HeatmapService struct {
	store    PoiStore
	boundary *boundary.Boundary
	grid     heatmap.SmoothedGrid
	log      *zap.Logger
}

// NewHeatmapService creates a heatmap service. city may be nil; when set,
// POIs outside it are dropped and its bbox replaces grid.Bound.
func NewHeatmapService(store PoiStore, city *boundary.Boundary, grid heatmap.SmoothedGrid, log *zap.Logger) *HeatmapService {
	if log == nil {
		log = zap.NewNop()
	}
	if city != nil {
		grid.Bound = city.Bound
	}
	return &HeatmapService{
		store:    store,
		boundary: city,
		grid:     grid,
		log:      log.Named("heatmap"),
	}
}

// HeatmapData aggregates the POIs of poiType ("all" for every type) by metric
func (s *HeatmapService) HeatmapData(ctx context.Context, poiType, metricName string) (models.HeatmapResponse, error) {
	poiType = strings.ToLower(strings.TrimSpace(poiType))
	if poiType == "" {
		return models.HeatmapResponse{}, fmt.Errorf("%w: type is required", ErrUnknownType)
	}
	metric, err := heatmap.ParseMetric(metricName)
	if err != nil {
		return models.HeatmapResponse{}, err
	}

	pois, err := s.load(ctx, poiType)
	if err != nil {
		return models.HeatmapResponse{}, err
	}

	metrics.HeatmapRequestsTotal.WithLabelValues(string(metric)).Inc()
	metrics.HeatmapInputSize.Observe(float64(len(pois)))

	resp := heatmap.Aggregate(pois, metric, poiType)
	s.log.Debug("heatmap aggregated",
		zap.String("type", poiType),
		zap.String("metric", string(metric)),
		zap.Int("pois", len(pois)),
		zap.Int("points", resp.Count))
	return resp, nil
}

// SmoothedHeatmap renders the kernel-smoothed grid for a path alias
func (s *HeatmapService) SmoothedHeatmap(ctx context.Context, alias string) (*geojson.FeatureCollection, error) {
	poiType, err := ResolveType(alias)
	if err != nil {
		return nil, err
	}

	pois, err := s.load(ctx, poiType)
	if err != nil {
		return nil, err
	}

	metrics.HeatmapRequestsTotal.WithLabelValues("smoothed").Inc()
	metrics.HeatmapInputSize.Observe(float64(len(pois)))

	fc := heatmap.Smoothed(pois, s.grid)
	s.log.Debug("smoothed heatmap rendered",
		zap.String("type", poiType),
		zap.Int("pois", len(pois)),
		zap.Int("cells", len(fc.Features)))
	return fc, nil
}

// CountByType counts stored POIs of a type; plural aliases are accepted
func (s *HeatmapService) CountByType(ctx context.Context, poiType string) (int64, error) {
	poiType = strings.ToLower(strings.TrimSpace(poiType))
	if t, err := ResolveType(poiType); err == nil && t != TypeAll {
		poiType = t
	}
	return s.store.CountByType(ctx, poiType)
}

func (s *HeatmapService) load(ctx context.Context, poiType string) ([]models.PointOfInterest, error) {
	var (
		pois []models.PointOfInterest
		err  error
	)
	if poiType == TypeAll {
		pois, err = s.store.ListAll(ctx)
	} else {
		pois, err = s.store.ListByType(ctx, poiType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load points of interest: %w", err)
	}
	return s.boundary.Filter(pois), nil
}
