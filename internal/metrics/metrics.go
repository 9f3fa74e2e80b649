package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Oracle calls by profile and outcome (ok, no_path_found, timeout, oracle_unavailable)
	OracleCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmaker_oracle_calls_total",
		Help: "Total number of routing engine calls",
	}, []string{"profile", "outcome"})

	// Oracle call latency
	OracleCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapmaker_oracle_call_duration_seconds",
		Help:    "Time taken by a single routing engine call",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	}, []string{"profile"})

	// Ordering decisions that fell back to haversine distance
	HaversineFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapmaker_optimizer_haversine_fallbacks_total",
		Help: "Candidates ranked by haversine distance because the routing engine failed",
	})

	// Segments dropped while stitching
	SegmentsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapmaker_stitcher_segments_skipped_total",
		Help: "Route segments skipped because the routing engine failed",
	})

	// Planned routes by outcome
	RoutesPlannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmaker_routes_planned_total",
		Help: "Total number of route plans by outcome (complete, partial, failed)",
	}, []string{"outcome"})

	// Heatmap requests by metric
	HeatmapRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapmaker_heatmap_requests_total",
		Help: "Total number of heatmap aggregations by metric",
	}, []string{"metric"})

	// POIs fed into an aggregation
	HeatmapInputSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mapmaker_heatmap_input_pois",
		Help:    "Number of POIs aggregated per heatmap request",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
	})
)
