package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/pkg/response"
)

// HeatmapProvider is the heatmap service as seen by the HTTP layer
type HeatmapProvider interface {
	HeatmapData(ctx context.Context, poiType, metric string) (models.HeatmapResponse, error)
	SmoothedHeatmap(ctx context.Context, alias string) (*geojson.FeatureCollection, error)
	CountByType(ctx context.Context, poiType string) (int64, error)
}

// HeatmapHandler handles HTTP requests for heatmaps
type HeatmapHandler struct {
	service HeatmapProvider
	log     *zap.Logger
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service HeatmapProvider, log *zap.Logger) *HeatmapHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HeatmapHandler{service: service, log: log.Named("heatmap_handler")}
}

// HeatmapData handles GET /api/v1/heatmap-data?type=restaurant&metric=density
func (h *HeatmapHandler) HeatmapData(c *gin.Context) {
	resp, err := h.service.HeatmapData(c.Request.Context(), c.Query("type"), c.Query("metric"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if resp.Points == nil {
		resp.Points = []models.HeatmapPoint{}
	}
	response.Success(c, resp)
}

// Smoothed handles GET /api/v1/heatmap/:type and returns a bare FeatureCollection
func (h *HeatmapHandler) Smoothed(c *gin.Context) {
	fc, err := h.service.SmoothedHeatmap(c.Request.Context(), c.Param("type"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Stats handles GET /api/v1/stats/:type
func (h *HeatmapHandler) Stats(c *gin.Context) {
	poiType := c.Param("type")
	count, err := h.service.CountByType(c.Request.Context(), poiType)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, gin.H{"type": poiType, "count": count})
}

// Register mounts the heatmap endpoints on rg
func (h *HeatmapHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/heatmap-data", h.HeatmapData)
	rg.GET("/heatmap/:type", h.Smoothed)
	rg.GET("/stats/:type", h.Stats)
}
