package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mapmaker-go/internal/models"
)

type fakeWriter struct {
	upsertFn func(ctx context.Context, poi *models.PointOfInterest) error
}

func (f fakeWriter) Upsert(ctx context.Context, poi *models.PointOfInterest) error {
	return f.upsertFn(ctx, poi)
}

const poiCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [30.2, 55.19]},
     "properties": {"name": "Pizza", "type": "Restaurant", "rating": 4.4, "place_id": "g1", "vicinity": "Lenina 1"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [30.21, 55.2]},
     "properties": {"name": "Corner"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [30.22, 55.21]},
     "properties": {"type": "cafe"}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[30.2, 55.19], [30.21, 55.2]]},
     "properties": {"name": "Street", "type": "road"}}
  ]
}`

func TestImportGeoJSON(t *testing.T) {
	var stored []models.PointOfInterest
	svc := NewImportService(fakeWriter{upsertFn: func(_ context.Context, poi *models.PointOfInterest) error {
		stored = append(stored, *poi)
		return nil
	}}, nil)

	res, err := svc.ImportGeoJSON(context.Background(), strings.NewReader(poiCollection), "bar")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Skipped: 2}, res)

	require.Len(t, stored, 2)
	assert.Equal(t, "restaurant", stored[0].Type)
	assert.InDelta(t, 55.19, stored[0].Lat, 1e-12)
	assert.InDelta(t, 30.2, stored[0].Lng, 1e-12)
	require.NotNil(t, stored[0].Rating)
	assert.InDelta(t, 4.4, *stored[0].Rating, 1e-12)
	assert.Equal(t, "g1", stored[0].PlaceID)
	assert.Equal(t, "Lenina 1", stored[0].Address)

	assert.Equal(t, "bar", stored[1].Type)
	assert.Nil(t, stored[1].Rating)
}

func TestImportGeoJSONErrors(t *testing.T) {
	writeErr := errors.New("readonly database")
	svc := NewImportService(fakeWriter{upsertFn: func(context.Context, *models.PointOfInterest) error {
		return writeErr
	}}, nil)

	_, err := svc.ImportGeoJSON(context.Background(), strings.NewReader(poiCollection), "")
	assert.ErrorIs(t, err, writeErr)

	_, err = svc.ImportGeoJSON(context.Background(), strings.NewReader("{"), "")
	assert.Error(t, err)
}
