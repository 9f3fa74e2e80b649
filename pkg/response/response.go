package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds carried in the envelope's error field
const (
	KindInvalidProfile        = "invalid_profile"
	KindInsufficientWaypoints = "insufficient_waypoints"
	KindInvalidMetric         = "invalid_metric"
	KindInvalidRequest        = "invalid_request"
	KindUnknownType           = "unknown_type"
	KindNoRoute               = "no_route"
	KindUnauthorized          = "unauthorized"
	KindRateLimited           = "rate_limited"
	KindInternal              = "internal"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response with a stable kind and aborts the chain
func Error(c *gin.Context, status int, message, kind string) {
	c.AbortWithStatusJSON(status, Response{
		Code:    status,
		Message: message,
		Error:   kind,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message, kind string) {
	Error(c, http.StatusBadRequest, message, kind)
}

// InternalError sends a 500 response without exposing the cause
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", KindInternal)
}
