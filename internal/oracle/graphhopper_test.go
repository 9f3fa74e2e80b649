package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mapmaker-go/internal/models"
)

const okBody = `{
  "paths": [{
    "distance": 1234.5,
    "time": 987000,
    "points": {"type": "LineString", "coordinates": [[30.20, 55.19], [30.21, 55.195], [30.22, 55.20]]},
    "instructions": [
      {"text": "Continue onto Lenin street", "distance": 1000.0, "time": 800000, "sign": 0},
      {"text": "Arrive at destination", "distance": 0, "time": 0, "sign": 4}
    ]
  }]
}`

func TestGraphHopperRoute_Success(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL, APIKey: "secret"}, nil)
	seg, err := c.Route(context.Background(),
		models.LatLng{Lat: 55.19, Lng: 30.20}, models.LatLng{Lat: 55.20, Lng: 30.22}, models.ProfileFoot)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/route", got.URL.Path)
	assert.Equal(t, []string{"55.19,30.2", "55.2,30.22"}, got.URL.Query()["point"])
	assert.Equal(t, "foot", got.URL.Query().Get("profile"))
	assert.Equal(t, "false", got.URL.Query().Get("points_encoded"))
	assert.Equal(t, "secret", got.URL.Query().Get("key"))

	assert.Equal(t, 1234.5, seg.DistanceMeters)
	assert.Equal(t, int64(987000), seg.DurationMillis)
	require.Len(t, seg.Coordinates, 3)
	assert.Equal(t, 30.20, seg.Coordinates[0].Lon())
	assert.Equal(t, 55.19, seg.Coordinates[0].Lat())
	require.Len(t, seg.Instructions, 2)
	assert.Equal(t, "Continue onto Lenin street", seg.Instructions[0].Text)
	assert.Equal(t, 4, seg.Instructions[1].Sign)
}

func TestGraphHopperRoute_NoPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "Connection between locations not found"}`))
	}))
	defer srv.Close()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL}, nil)
	_, err := c.Route(context.Background(), models.LatLng{}, models.LatLng{Lat: 1}, models.ProfileCar)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPathFound))
	assert.Equal(t, "no_path_found", Kind(err))
}

func TestGraphHopperRoute_EmptyPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths": []}`))
	}))
	defer srv.Close()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL}, nil)
	_, err := c.Route(context.Background(), models.LatLng{}, models.LatLng{Lat: 1}, models.ProfileCar)
	assert.ErrorIs(t, err, ErrNoPathFound)
}

func TestGraphHopperRoute_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL}, nil)
	_, err := c.Route(context.Background(), models.LatLng{}, models.LatLng{Lat: 1}, models.ProfileBike)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.NotErrorIs(t, err, ErrNoPathFound)
}

func TestGraphHopperRoute_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Wrong credentials. Register and get a valid API key"}`))
	}))
	defer srv.Close()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL}, nil)
	_, err := c.Route(context.Background(), models.LatLng{}, models.LatLng{Lat: 1}, models.ProfileBike)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestGraphHopperRoute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewGraphHopperClient(GraphHopperConfig{BaseURL: srv.URL}, nil)
	_, err := c.Route(ctx, models.LatLng{}, models.LatLng{Lat: 1}, models.ProfileFoot)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.Equal(t, "timeout", Kind(err))
}
