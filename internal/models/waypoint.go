package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is returned for any travel profile outside foot, bike and car.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the travel mode applied to every segment of a route
type Profile string

const (
	ProfileFoot Profile = "foot"
	ProfileBike Profile = "bike"
	ProfileCar  Profile = "car"
)

// ParseProfile maps user input onto a Profile. Unknown values are rejected.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfileFoot:
		return ProfileFoot, nil
	case ProfileBike:
		return ProfileBike, nil
	case ProfileCar:
		return ProfileCar, nil
	}
	return "", fmt.Errorf("%w: %q (expected foot, bike or car)", ErrInvalidProfile, s)
}

func (p Profile) String() string {
	return string(p)
}

// LatLng is a bare coordinate pair in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waypoint is a point of interest to visit. Identity is its position in the
// request, so duplicates are allowed.
type Waypoint struct {
	Lat      float64  `json:"lat" binding:"min=-90,max=90"`
	Lng      float64  `json:"lng" binding:"min=-180,max=180"`
	Name     string   `json:"name,omitempty"`
	Category string   `json:"category,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// Position returns the waypoint coordinates
func (w Waypoint) Position() LatLng {
	return LatLng{Lat: w.Lat, Lng: w.Lng}
}
