package heatmap

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mapmaker-go/internal/models"
)

func TestIntensityBounds(t *testing.T) {
	assert.Equal(t, 1.0, Intensity(100, 5))
	assert.Equal(t, 1.0, Intensity(3, 1000))
	assert.Equal(t, 0.0, Intensity(0, -50))
	assert.InDelta(t, 0.7*0.2+0.3*0.8, Intensity(1, 4), 1e-12)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := Intensity(rng.Intn(500), rng.NormFloat64()*20)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestEstimate(t *testing.T) {
	pois := []models.PointOfInterest{
		poi("here", 55.19, 30.20, rating(5)),
		poi("near", 55.19, 30.2015, rating(3)),
		poi("far", 55.25, 30.30, rating(1)),
	}

	stats := Estimate(55.19, 30.20, pois, 0.003)
	assert.Equal(t, 2, stats.Count)
	// the point at the center weighs more, so the average leans to 5
	assert.Greater(t, stats.AvgRating, 4.0)
	assert.Less(t, stats.AvgRating, 5.0)
	assert.Greater(t, stats.Weight, 1.0)
	assert.InDelta(t, Intensity(2, stats.AvgRating), stats.Intensity, 1e-12)

	empty := Estimate(0, 0, pois, 0.003)
	assert.Equal(t, CellStats{}, empty)
}

func TestSmoothed_Empty(t *testing.T) {
	fc := Smoothed(nil, DefaultSmoothedGrid())
	assert.Empty(t, fc.Features)
	assert.Equal(t, true, fc.ExtraMembers["noData"])

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"noData":true`)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
}

func TestSmoothed_CellsAroundCluster(t *testing.T) {
	grid := SmoothedGrid{
		Bound:     orb.Bound{Min: orb.Point{30.0, 55.0}, Max: orb.Point{30.1, 55.1}},
		Size:      10,
		Radius:    0.01,
		Threshold: 0.1,
		Steps:     4,
	}
	var pois []models.PointOfInterest
	for i := 0; i < 10; i++ {
		pois = append(pois, poi("x", 55.055, 30.055, rating(4)))
	}

	fc := Smoothed(pois, grid)
	require.NotEmpty(t, fc.Features)
	assert.Nil(t, fc.ExtraMembers["noData"])

	for _, f := range fc.Features {
		intensity := f.Properties["intensity"].(float64)
		assert.Greater(t, intensity, 0.1)
		assert.LessOrEqual(t, intensity, 1.0)

		poly, ok := f.Geometry.(orb.Polygon)
		require.True(t, ok)
		require.Len(t, poly, 1)
		assert.Len(t, poly[0], 20)
		assert.True(t, poly[0].Closed())
	}
}

func TestSmoothed_ThresholdOmitsWeakCells(t *testing.T) {
	grid := SmoothedGrid{
		Bound:     orb.Bound{Min: orb.Point{30.0, 55.0}, Max: orb.Point{30.1, 55.1}},
		Size:      10,
		Radius:    0.01,
		Threshold: 0.5,
	}
	// one POI with no rating: 0.7*0.2 + 0.3*0.6 = 0.32, below 0.5
	fc := Smoothed([]models.PointOfInterest{poi("lonely", 55.055, 30.055, nil)}, grid)
	assert.Empty(t, fc.Features)
	assert.Nil(t, fc.ExtraMembers)
}

func TestCellPolygon(t *testing.T) {
	b := orb.Bound{Min: orb.Point{30, 55}, Max: orb.Point{31, 56}}
	ring := CellPolygon(b, 4)[0]

	require.Len(t, ring, 20)
	assert.Equal(t, orb.Point{30, 55}, ring[0])
	assert.Equal(t, orb.Point{30, 56}, ring[4])
	assert.Equal(t, orb.Point{31, 56}, ring[9])
	assert.Equal(t, orb.Point{31, 55}, ring[14])
	assert.Equal(t, orb.Point{30, 55}, ring[19])
	assert.Equal(t, b, ring.Bound())
}
