package models

// PointOfInterest is a stored place used as heatmap input
type PointOfInterest struct {
	ID       int64    `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Type     string   `json:"type" db:"type"` // restaurant, cafe, bar, school, ...
	Rating   *float64 `json:"rating,omitempty" db:"rating"`
	PlaceID  string   `json:"place_id,omitempty" db:"place_id"`
	Lat      float64  `json:"lat" db:"latitude"`
	Lng      float64  `json:"lng" db:"longitude"`
	Vicinity string   `json:"vicinity,omitempty" db:"vicinity"`
	Address  string   `json:"address,omitempty" db:"address"`
}

// HasRating reports whether the POI carries a usable (positive) rating
func (p PointOfInterest) HasRating() bool {
	return p.Rating != nil && *p.Rating > 0
}
