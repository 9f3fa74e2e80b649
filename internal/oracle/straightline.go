package oracle

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/spatial"
)

// Instruction signs, same numbering as GraphHopper
const (
	SignContinue = 0
	SignFinish   = 4
)

// profileSpeed is the assumed average speed in km/h
var profileSpeed = map[models.Profile]float64{
	models.ProfileFoot: 5,
	models.ProfileBike: 15,
	models.ProfileCar:  40,
}

// profileDetour scales the great-circle distance to approximate street distance
var profileDetour = map[models.Profile]float64{
	models.ProfileFoot: 1.2,
	models.ProfileBike: 1.25,
	models.ProfileCar:  1.35,
}

// StraightLine is a local engine that needs no road graph: great-circle
// distance scaled by a per-profile detour factor, travelled at a fixed speed.
// It never fails for valid input and serves as the local routing mode.
type StraightLine struct {
	// Samples is the number of intermediate vertices emitted per segment
	Samples int
}

// Route implements DistanceOracle
func (s StraightLine) Route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	if err := ctx.Err(); err != nil {
		return models.SegmentResult{}, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	speed, ok := profileSpeed[profile]
	if !ok {
		return models.SegmentResult{}, fmt.Errorf("%w: %q", models.ErrInvalidProfile, profile)
	}

	dist := spatial.HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng) * profileDetour[profile]
	millis := int64(math.Round(dist / (speed / 3.6) * 1000))

	a := orb.Point{from.Lng, from.Lat}
	b := orb.Point{to.Lng, to.Lat}
	line := make(orb.LineString, 0, s.Samples+2)
	line = append(line, a)
	for i := 1; i <= s.Samples; i++ {
		line = append(line, spatial.Interpolate(a, b, float64(i)/float64(s.Samples+1)))
	}
	line = append(line, b)

	return models.SegmentResult{
		DistanceMeters: dist,
		DurationMillis: millis,
		Coordinates:    line,
		Instructions: []models.Instruction{
			{Text: "Continue", DistanceMeters: dist, DurationMillis: millis, Sign: SignContinue},
			{Text: "Arrive at destination", Sign: SignFinish},
		},
	}, nil
}
