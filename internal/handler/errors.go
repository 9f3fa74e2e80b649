package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/heatmap"
	"github.com/jengzang/mapmaker-go/internal/models"
	"github.com/jengzang/mapmaker-go/internal/oracle"
	"github.com/jengzang/mapmaker-go/internal/routing"
	"github.com/jengzang/mapmaker-go/internal/service"
	"github.com/jengzang/mapmaker-go/pkg/response"
)

// writeError maps domain errors onto a status and a stable error kind.
// Causes of internal errors are logged, never echoed.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidProfile):
		response.BadRequest(c, "Invalid profile: use foot, bike or car", response.KindInvalidProfile)
	case errors.Is(err, routing.ErrInsufficientWaypoints):
		response.BadRequest(c, "At least two points are required", response.KindInsufficientWaypoints)
	case errors.Is(err, heatmap.ErrInvalidMetric):
		response.BadRequest(c, "Invalid metric: use density or rating", response.KindInvalidMetric)
	case errors.Is(err, service.ErrUnknownType):
		response.BadRequest(c, "Unknown place type", response.KindUnknownType)
	case errors.Is(err, routing.ErrNoRoute),
		errors.Is(err, oracle.ErrNoPathFound),
		errors.Is(err, oracle.ErrOracleUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		log.Warn("routing failed", zap.Error(err), zap.String("kind", oracle.Kind(err)))
		response.Error(c, http.StatusBadGateway, "Error calculating route", response.KindNoRoute)
	default:
		log.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		response.InternalError(c)
	}
}
