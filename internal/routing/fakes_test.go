package routing

import (
	"context"
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
	"github.com/jengzang/mapmaker-go/internal/spatial"
)

type oracleCall struct {
	from, to models.LatLng
	profile  models.Profile
}

type scriptedStep struct {
	seg models.SegmentResult
	err error
}

// scriptedOracle answers calls in order from steps
type scriptedOracle struct {
	mu    sync.Mutex
	steps []scriptedStep
	calls []oracleCall
}

func (o *scriptedOracle) Route(_ context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	i := len(o.calls)
	o.calls = append(o.calls, oracleCall{from: from, to: to, profile: profile})
	if i >= len(o.steps) {
		return models.SegmentResult{}, fmt.Errorf("unexpected call %d", i)
	}
	return o.steps[i].seg, o.steps[i].err
}

// haversineOracle returns the great-circle distance and a 2-point line
var haversineOracle = oracle.Func(func(_ context.Context, from, to models.LatLng, _ models.Profile) (models.SegmentResult, error) {
	d := spatial.HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng)
	return models.SegmentResult{
		DistanceMeters: d,
		DurationMillis: int64(d),
		Coordinates:    orb.LineString{{from.Lng, from.Lat}, {to.Lng, to.Lat}},
		Instructions:   []models.Instruction{{Text: "go"}, {Text: "arrive"}},
	}, nil
})

// segment builds a result with n coordinates and n instructions
func segment(dist float64, millis int64, n int, tag string) models.SegmentResult {
	seg := models.SegmentResult{DistanceMeters: dist, DurationMillis: millis}
	for i := 0; i < n; i++ {
		seg.Coordinates = append(seg.Coordinates, orb.Point{dist, float64(i)})
		seg.Instructions = append(seg.Instructions, models.Instruction{Text: fmt.Sprintf("%s-%d", tag, i)})
	}
	return seg
}

func wp(lat, lng float64, name string) models.Waypoint {
	return models.Waypoint{Lat: lat, Lng: lng, Name: name}
}

func names(wps []models.Waypoint) []string {
	out := make([]string, len(wps))
	for i, w := range wps {
		out[i] = w.Name
	}
	return out
}
