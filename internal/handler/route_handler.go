package handler

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/pkg/response"
)

// RoutePlanner is the route service as seen by the HTTP layer
type RoutePlanner interface {
	PlanRoute(ctx context.Context, waypoints []models.Waypoint, profile string, optimize bool) (*models.Route, error)
	RouteSegment(ctx context.Context, from, to models.LatLng, profile string) (models.SegmentResult, error)
	Mode() string
}

// RouteHandler handles HTTP requests for routes
type RouteHandler struct {
	service RoutePlanner
	log     *zap.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service RoutePlanner, log *zap.Logger) *RouteHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteHandler{service: service, log: log.Named("route_handler")}
}

type planRouteRequest struct {
	Points   []models.Waypoint `json:"points" binding:"dive"`
	Profile  string            `json:"profile"`
	Optimize bool              `json:"optimize"`
}

type segmentQuery struct {
	StartLat *float64 `form:"startLat" binding:"required,min=-90,max=90"`
	StartLon *float64 `form:"startLon" binding:"required,min=-180,max=180"`
	EndLat   *float64 `form:"endLat" binding:"required,min=-90,max=90"`
	EndLon   *float64 `form:"endLon" binding:"required,min=-180,max=180"`
	Profile  string   `form:"profile"`
}

type routeResponse struct {
	DistanceMeters float64              `json:"distanceMeters"`
	DurationMillis int64                `json:"durationMillis"`
	Geometry       *geojson.Geometry    `json:"geometry"`
	Instructions   []models.Instruction `json:"instructions"`
	Waypoints      []models.Waypoint    `json:"waypoints,omitempty"`
	Legs           []models.Leg         `json:"legs,omitempty"`
}

func newRouteResponse(r *models.Route) routeResponse {
	return routeResponse{
		DistanceMeters: r.DistanceMeters,
		DurationMillis: r.DurationMillis,
		Geometry:       geojson.NewGeometry(r.Coordinates),
		Instructions:   r.Instructions,
		Waypoints:      r.Waypoints,
		Legs:           r.Legs,
	}
}

// PlanRoute handles POST /api/v1/routes
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	var req planRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.KindInvalidRequest)
		return
	}

	route, err := h.service.PlanRoute(c.Request.Context(), req.Points, req.Profile, req.Optimize)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, newRouteResponse(route))
}

// ThematicRoute handles GET /api/v1/thematic-route?points=lat,lon;lat,lon&profile=foot
func (h *RouteHandler) ThematicRoute(c *gin.Context) {
	// net/url drops query pairs containing an unescaped ';', so points is
	// read from the raw query.
	waypoints, err := parsePoints(rawQueryValue(c.Request.URL.RawQuery, "points"))
	if err != nil {
		response.BadRequest(c, "Invalid points format: expected lat,lon;lat,lon", response.KindInvalidRequest)
		return
	}

	optimize, _ := strconv.ParseBool(c.Query("optimize"))
	route, err := h.service.PlanRoute(c.Request.Context(), waypoints, c.Query("profile"), optimize)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, newRouteResponse(route))
}

// Segment handles GET /api/v1/route
func (h *RouteHandler) Segment(c *gin.Context) {
	var q segmentQuery
	if err := c.ShouldBindQuery(&q); err != nil ||
		!finite(*q.StartLat) || !finite(*q.StartLon) || !finite(*q.EndLat) || !finite(*q.EndLon) {
		response.BadRequest(c, "Invalid query parameters", response.KindInvalidRequest)
		return
	}

	seg, err := h.service.RouteSegment(c.Request.Context(),
		models.LatLng{Lat: *q.StartLat, Lng: *q.StartLon},
		models.LatLng{Lat: *q.EndLat, Lng: *q.EndLon},
		q.Profile)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, routeResponse{
		DistanceMeters: seg.DistanceMeters,
		DurationMillis: seg.DurationMillis,
		Geometry:       geojson.NewGeometry(seg.Coordinates),
		Instructions:   seg.Instructions,
	})
}

// Status handles GET /api/v1/routing/status
func (h *RouteHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{"mode": h.service.Mode()})
}

// parsePoints reads "lat,lon;lat,lon;..." into waypoints
func parsePoints(raw string) ([]models.Waypoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(strings.TrimSuffix(raw, ";"), ";")
	waypoints := make([]models.Waypoint, 0, len(parts))
	for i, part := range parts {
		latLon := strings.Split(part, ",")
		if len(latLon) != 2 {
			return nil, fmt.Errorf("point %d: want lat,lon", i+1)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latLon[0]), 64)
		if err != nil || !finite(lat) || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("point %d: bad latitude %q", i+1, latLon[0])
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(latLon[1]), 64)
		if err != nil || !finite(lng) || lng < -180 || lng > 180 {
			return nil, fmt.Errorf("point %d: bad longitude %q", i+1, latLon[1])
		}
		waypoints = append(waypoints, models.Waypoint{Lat: lat, Lng: lng})
	}
	return waypoints, nil
}

// rawQueryValue returns the first unescaped value of key in a raw query
// string, splitting pairs on '&' only.
func rawQueryValue(rawQuery, key string) string {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if uk, err := url.QueryUnescape(k); err != nil || uk != key {
			continue
		}
		if uv, err := url.QueryUnescape(v); err == nil {
			return uv
		}
		return ""
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Register mounts the route endpoints on rg
func (h *RouteHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/routes", h.PlanRoute)
	rg.GET("/thematic-route", h.ThematicRoute)
	rg.GET("/route", h.Segment)
	rg.GET("/routing/status", h.Status)
}
