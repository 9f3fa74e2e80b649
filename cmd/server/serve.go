package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/mapmaker-go/internal/api"
	"github.com/jengzang/mapmaker-go/internal/boundary"
	"github.com/jengzang/mapmaker-go/internal/config"
	"github.com/jengzang/mapmaker-go/internal/database"
	"github.com/jengzang/mapmaker-go/internal/handler"
	"github.com/jengzang/mapmaker-go/internal/heatmap"
	"github.com/jengzang/mapmaker-go/internal/logging"
	"github.com/jengzang/mapmaker-go/internal/middleware"
	"github.com/jengzang/mapmaker-go/internal/oracle"
	"github.com/jengzang/mapmaker-go/internal/repository"
	"github.com/jengzang/mapmaker-go/internal/routing"
	"github.com/jengzang/mapmaker-go/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

// setup loads configuration, builds the logger and opens the database
func setup(ctx context.Context) (*config.Config, *zap.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(ctx, database.Config{Path: cfg.DBPath}, log)
	if err != nil {
		log.Error("failed to initialize database", zap.Error(err))
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func newOracle(cfg *config.Config, log *zap.Logger) oracle.DistanceOracle {
	if cfg.RoutingMode == config.RoutingModeLocal {
		return oracle.Instrument(oracle.StraightLine{})
	}
	if cfg.GraphHopperAPIKey == "" {
		log.Warn("GRAPHHOPPER_API_KEY is empty, routing requests will likely be rejected")
	}
	return oracle.Instrument(oracle.NewGraphHopperClient(oracle.GraphHopperConfig{
		BaseURL: cfg.GraphHopperURL,
		APIKey:  cfg.GraphHopperAPIKey,
	}, log))
}

func serve(ctx context.Context) error {
	cfg, log, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	var city *boundary.Boundary
	if cfg.HeatmapBoundaryFile != "" {
		city, err = boundary.LoadFile(cfg.HeatmapBoundaryFile)
		if err != nil {
			return fmt.Errorf("load city boundary: %w", err)
		}
		log.Info("city boundary loaded", zap.String("file", cfg.HeatmapBoundaryFile))
	}

	grid := heatmap.DefaultSmoothedGrid()
	grid.Bound = cfg.HeatmapBound
	grid.Size = cfg.HeatmapGridSize
	grid.Radius = cfg.HeatmapRadius

	planner := routing.NewPlanner(newOracle(cfg, log), routing.Options{
		CallDelay:   cfg.OracleDelay,
		CallTimeout: cfg.OracleTimeout,
	}, log)

	routes := service.NewRouteService(planner, cfg.RoutingMode)
	heat := service.NewHeatmapService(repository.NewPoiRepository(db), city, grid, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(api.Options{
		Logger:      log,
		RateLimiter: middleware.NewRateLimiter(ctx, cfg.RateLimit, cfg.RateWindow),
		RequireAuth: cfg.RequireAuth,
		JWTSecret:   cfg.JWTSecret,
	}, api.Handlers{
		Route:   handler.NewRouteHandler(routes, log),
		Heatmap: handler.NewHeatmapHandler(heat, log),
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Port),
			zap.String("routing_mode", cfg.RoutingMode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
