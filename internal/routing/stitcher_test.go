package routing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
)

func fourStops() []models.Waypoint {
	return []models.Waypoint{wp(55.19, 30.20, "a"), wp(55.20, 30.21, "b"), wp(55.21, 30.22, "c"), wp(55.22, 30.23, "d")}
}

func TestBuildRoute_AdditiveTotalsAndCoordinateLaw(t *testing.T) {
	o := &scriptedOracle{steps: []scriptedStep{
		{seg: segment(100, 1000, 3, "s1")},
		{seg: segment(250, 2500, 5, "s2")},
		{seg: segment(40, 400, 2, "s3")},
	}}
	st := NewStitcher(o, Options{}, nil)

	route, err := st.BuildRoute(context.Background(), fourStops(), models.ProfileFoot)
	require.NoError(t, err)

	assert.Equal(t, 390.0, route.DistanceMeters)
	assert.Equal(t, int64(3900), route.DurationMillis)
	// 3 + 5 + 2 - (3 - 1)
	assert.Len(t, route.Coordinates, 8)
	assert.Len(t, route.Instructions, 8)
	assert.Equal(t, "s1-0", route.Instructions[0].Text)
	assert.Equal(t, "s2-1", route.Instructions[3].Text)
	assert.Equal(t, "s3-1", route.Instructions[7].Text)

	require.Len(t, route.Legs, 3)
	assert.Equal(t, models.Leg{From: 1, To: 2, DistanceMeters: 250, DurationMillis: 2500}, route.Legs[1])
	assert.Zero(t, route.SkippedLegs())

	require.Len(t, o.calls, 3)
	assert.Equal(t, models.LatLng{Lat: 55.20, Lng: 30.21}, o.calls[1].from)
	assert.Equal(t, models.LatLng{Lat: 55.21, Lng: 30.22}, o.calls[1].to)
	assert.Equal(t, models.ProfileFoot, o.calls[2].profile)
}

func TestBuildRoute_SingleSegmentKeepsEverything(t *testing.T) {
	o := &scriptedOracle{steps: []scriptedStep{{seg: segment(10, 100, 4, "s1")}}}
	st := NewStitcher(o, Options{}, nil)

	route, err := st.BuildRoute(context.Background(), fourStops()[:2], models.ProfileCar)
	require.NoError(t, err)
	assert.Len(t, route.Coordinates, 4)
	assert.Len(t, route.Instructions, 4)
}

func TestBuildRoute_SkipsFailedSegment(t *testing.T) {
	o := &scriptedOracle{steps: []scriptedStep{
		{seg: segment(100, 1000, 3, "s1")},
		{err: oracle.ErrNoPathFound},
		{seg: segment(40, 400, 4, "s3")},
	}}
	st := NewStitcher(o, Options{}, nil)

	route, err := st.BuildRoute(context.Background(), fourStops(), models.ProfileBike)
	require.NoError(t, err)

	assert.Equal(t, 140.0, route.DistanceMeters)
	assert.Equal(t, int64(1400), route.DurationMillis)
	assert.Len(t, route.Coordinates, 3+4-1)
	assert.Equal(t, 1, route.SkippedLegs())
	assert.True(t, route.Legs[1].Skipped)
	assert.Equal(t, "no_path_found", route.Legs[1].Reason)
	assert.Len(t, route.Waypoints, 4)
}

func TestBuildRoute_FirstSegmentFails(t *testing.T) {
	o := &scriptedOracle{steps: []scriptedStep{
		{err: oracle.ErrOracleUnavailable},
		{seg: segment(50, 500, 3, "s2")},
		{seg: segment(60, 600, 3, "s3")},
	}}
	st := NewStitcher(o, Options{}, nil)

	route, err := st.BuildRoute(context.Background(), fourStops(), models.ProfileFoot)
	require.NoError(t, err)

	// first successful segment keeps its leading point
	assert.Len(t, route.Coordinates, 3+3-1)
	assert.Equal(t, "s2-0", route.Instructions[0].Text)
	assert.Equal(t, 110.0, route.DistanceMeters)
	assert.Equal(t, "oracle_unavailable", route.Legs[0].Reason)
}

func TestBuildRoute_AllSegmentsFail(t *testing.T) {
	o := &scriptedOracle{steps: []scriptedStep{
		{err: oracle.ErrOracleUnavailable},
		{err: oracle.ErrOracleUnavailable},
	}}
	st := NewStitcher(o, Options{}, nil)

	_, err := st.BuildRoute(context.Background(), fourStops()[:3], models.ProfileFoot)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.ErrorIs(t, err, oracle.ErrOracleUnavailable)
}

func TestBuildRoute_InsufficientWaypoints(t *testing.T) {
	st := NewStitcher(haversineOracle, Options{}, nil)

	_, err := st.BuildRoute(context.Background(), nil, models.ProfileFoot)
	assert.ErrorIs(t, err, ErrInsufficientWaypoints)

	_, err = st.BuildRoute(context.Background(), fourStops()[:1], models.ProfileFoot)
	assert.ErrorIs(t, err, ErrInsufficientWaypoints)
}

func TestBuildRoute_TimeoutCountsAsFailure(t *testing.T) {
	slowOnSecond := 0
	slow := oracle.Func(func(ctx context.Context, from, to models.LatLng, p models.Profile) (models.SegmentResult, error) {
		slowOnSecond++
		if slowOnSecond == 2 {
			<-ctx.Done()
			return models.SegmentResult{}, ctx.Err()
		}
		return segment(10, 10, 2, "ok"), nil
	})
	st := NewStitcher(slow, Options{CallTimeout: 20 * time.Millisecond}, nil)

	route, err := st.BuildRoute(context.Background(), fourStops(), models.ProfileFoot)
	require.NoError(t, err)
	assert.True(t, route.Legs[1].Skipped)
	assert.Equal(t, "timeout", route.Legs[1].Reason)
	assert.Equal(t, 20.0, route.DistanceMeters)
}
