package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/handler"
	"github.com/jengzang/mapmaker-go/internal/middleware"
)

// Options configures the router
type Options struct {
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	RequireAuth bool
	JWTSecret   string
}

// Handlers are the API handlers mounted under /api/v1
type Handlers struct {
	Route   *handler.RouteHandler
	Heatmap *handler.HeatmapHandler
}

// SetupRouter builds the HTTP router
func SetupRouter(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mapmaker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if opts.RateLimiter != nil {
		api.Use(middleware.RateLimit(opts.RateLimiter))
	}
	if opts.RequireAuth {
		api.Use(middleware.Auth([]byte(opts.JWTSecret)))
	}

	h.Route.Register(api)
	h.Heatmap.Register(api)

	return r
}
