package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"

	"github.com/jengzang/mapmaker-go/internal/heatmap"
)

// Routing modes
const (
	RoutingModeAPI   = "api"
	RoutingModeLocal = "local"
)

// Config is the application configuration
type Config struct {
	Port     string
	DBPath   string
	Env      string
	LogLevel string

	JWTSecret   string
	RequireAuth bool

	RoutingMode       string
	GraphHopperURL    string
	GraphHopperAPIKey string
	OracleTimeout     time.Duration
	OracleDelay       time.Duration

	RateLimit  int
	RateWindow time.Duration

	HeatmapBound        orb.Bound
	HeatmapGridSize     int
	HeatmapRadius       float64
	HeatmapBoundaryFile string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", ":8080"),
		DBPath:   getEnv("DB_PATH", "./data/pois.db"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		RequireAuth: getEnvBool("REQUIRE_AUTH", false),

		RoutingMode:       strings.ToLower(getEnv("ROUTING_MODE", RoutingModeAPI)),
		GraphHopperURL:    getEnv("GRAPHHOPPER_URL", "https://graphhopper.com/api/1"),
		GraphHopperAPIKey: os.Getenv("GRAPHHOPPER_API_KEY"),
		OracleTimeout:     getEnvDuration("ORACLE_TIMEOUT", 10*time.Second),
		OracleDelay:       getEnvDuration("ORACLE_DELAY", 0),

		RateLimit:  getEnvInt("RATE_LIMIT", 100),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute),

		HeatmapBound:        heatmap.DefaultBound,
		HeatmapGridSize:     getEnvInt("HEATMAP_GRID_SIZE", heatmap.DefaultGridSize),
		HeatmapRadius:       getEnvFloat("HEATMAP_RADIUS", heatmap.DefaultRadius),
		HeatmapBoundaryFile: os.Getenv("HEATMAP_BOUNDARY_FILE"),
	}

	if cfg.RoutingMode != RoutingModeAPI && cfg.RoutingMode != RoutingModeLocal {
		return nil, fmt.Errorf("invalid ROUTING_MODE %q: want %q or %q", cfg.RoutingMode, RoutingModeAPI, RoutingModeLocal)
	}

	if cfg.RequireAuth && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("REQUIRE_AUTH is set but JWT_SECRET is empty")
	}

	if raw := os.Getenv("HEATMAP_BBOX"); raw != "" {
		b, err := ParseBound(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HEATMAP_BBOX: %w", err)
		}
		cfg.HeatmapBound = b
	}

	return cfg, nil
}

// ParseBound parses "minLat,minLng,maxLat,maxLng"
func ParseBound(raw string) (orb.Bound, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("want 4 comma separated values, got %d", len(parts))
	}
	v := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		v[i] = f
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return orb.Bound{}, fmt.Errorf("min must be below max")
	}
	return orb.Bound{Min: orb.Point{v[1], v[0]}, Max: orb.Point{v[3], v[2]}}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
