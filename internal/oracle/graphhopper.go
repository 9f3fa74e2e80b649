package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/models"
)

// DefaultGraphHopperURL is the public GraphHopper Directions API endpoint
const DefaultGraphHopperURL = "https://graphhopper.com/api/1"

// GraphHopperConfig configures the remote directions client
type GraphHopperConfig struct {
	BaseURL    string
	APIKey     string
	Locale     string
	HTTPClient *http.Client
}

// GraphHopperClient asks the GraphHopper Directions API for one segment per call
type GraphHopperClient struct {
	baseURL string
	apiKey  string
	locale  string
	http    *http.Client
	log     *zap.Logger
}

// NewGraphHopperClient creates a directions client. A nil logger is allowed.
func NewGraphHopperClient(cfg GraphHopperConfig, log *zap.Logger) *GraphHopperClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGraphHopperURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphHopperClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		locale:  cfg.Locale,
		http:    cfg.HTTPClient,
		log:     log.Named("graphhopper"),
	}
}

type ghInstruction struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
	Time     int64   `json:"time"`
	Sign     int     `json:"sign"`
}

type ghPath struct {
	Distance     float64           `json:"distance"`
	Time         int64             `json:"time"`
	Points       *geojson.Geometry `json:"points"`
	Instructions []ghInstruction   `json:"instructions"`
}

type ghResponse struct {
	Paths   []ghPath `json:"paths"`
	Message string   `json:"message"`
}

// Route implements DistanceOracle
func (c *GraphHopperClient) Route(ctx context.Context, from, to models.LatLng, profile models.Profile) (models.SegmentResult, error) {
	q := url.Values{}
	q.Add("point", formatPoint(from))
	q.Add("point", formatPoint(to))
	q.Set("profile", profile.String())
	q.Set("points_encoded", "false")
	q.Set("instructions", "true")
	q.Set("calc_points", "true")
	if c.locale != "" {
		q.Set("locale", c.locale)
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return models.SegmentResult{}, fmt.Errorf("%w: build request: %w", ErrOracleUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.SegmentResult{}, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return models.SegmentResult{}, fmt.Errorf("%w: read body: %w", ErrOracleUnavailable, err)
	}

	var payload ghResponse
	if err := json.Unmarshal(body, &payload); err != nil && resp.StatusCode == http.StatusOK {
		return models.SegmentResult{}, fmt.Errorf("%w: decode response: %w", ErrOracleUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("directions request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", payload.Message))
		if resp.StatusCode < http.StatusInternalServerError && isNoPathMessage(payload.Message) {
			return models.SegmentResult{}, fmt.Errorf("%w: %s", ErrNoPathFound, payload.Message)
		}
		return models.SegmentResult{}, fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	if len(payload.Paths) == 0 {
		return models.SegmentResult{}, fmt.Errorf("%w: empty paths", ErrNoPathFound)
	}

	return toSegment(payload.Paths[0]), nil
}

func toSegment(p ghPath) models.SegmentResult {
	seg := models.SegmentResult{
		DistanceMeters: p.Distance,
		DurationMillis: p.Time,
	}
	if p.Points != nil {
		if ls, ok := p.Points.Coordinates.(orb.LineString); ok {
			seg.Coordinates = ls
		}
	}
	seg.Instructions = make([]models.Instruction, 0, len(p.Instructions))
	for _, in := range p.Instructions {
		seg.Instructions = append(seg.Instructions, models.Instruction{
			Text:           in.Text,
			DistanceMeters: in.Distance,
			DurationMillis: in.Time,
			Sign:           in.Sign,
		})
	}
	return seg
}

func formatPoint(p models.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func isNoPathMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "cannot find point") ||
		strings.Contains(msg, "connection between locations not found") ||
		strings.Contains(msg, "point not found")
}
