package models

// HeatmapPoint represents a single point in the heatmap
type HeatmapPoint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Value   float64 `json:"value"`             // count for density, rating for rating
	Name    string  `json:"name,omitempty"`    // sample POI name
	Address string  `json:"address,omitempty"` // sample POI address
	Count   int     `json:"count,omitempty"`   // density cells only
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points   []HeatmapPoint `json:"points"`
	Count    int            `json:"count"`
	MaxValue float64        `json:"maxValue"`
	MinValue float64        `json:"minValue"`
	Metric   string         `json:"metric"`
	CellSize float64        `json:"cellSize,omitempty"` // degrees, density only
	NoData   bool           `json:"noData,omitempty"`
	Message  string         `json:"message,omitempty"`
}
