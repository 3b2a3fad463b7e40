package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sublet_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Matching
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublet_match_requests_total",
			Help: "Total number of ranked match computations",
		},
		[]string{"actor"}, // "renter", "listing"
	)

	MatchCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sublet_match_candidates",
			Help:    "Number of candidates that passed hard filters",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"actor"},
	)

	// Swipe ledger
	Swipes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublet_swipes_total",
			Help: "Total number of recorded swipe decisions",
		},
		[]string{"direction", "is_right"}, // direction: "renter_to_listing", "listing_to_renter"
	)

	MutualMatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sublet_mutual_matches_observed_total",
			Help: "Swipes that completed a mutual match at write time",
		},
	)

	// Recommendations
	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sublet_recommendation_cache_hits_total",
			Help: "Recommendation cache hits",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sublet_recommendation_cache_misses_total",
			Help: "Recommendation cache misses",
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sublet_recommendation_duration_seconds",
			Help:    "Time to compute collaborative-filtering recommendations",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Geocoder
	GeocoderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublet_geocoder_requests_total",
			Help: "Geocoder calls by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: "ok", "unresolved", "error", "breaker_open"
	)

	GeocoderBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sublet_geocoder_breaker_state",
			Help: "Geocoder circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Workers
	ListingsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sublet_listings_expired_total",
			Help: "Listings deactivated by the expiry worker",
		},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordMatch(actor string, candidates int) {
	MatchRequests.WithLabelValues(actor).Inc()
	MatchCandidates.WithLabelValues(actor).Observe(float64(candidates))
}

func RecordSwipe(direction string, isRight, mutual bool) {
	Swipes.WithLabelValues(direction, strconv.FormatBool(isRight)).Inc()
	if mutual {
		MutualMatches.Inc()
	}
}

func RecordRecommendationCache(hit bool) {
	if hit {
		RecommendationCacheHits.Inc()
		return
	}
	RecommendationCacheMisses.Inc()
}

func RecordGeocoderCall(operation, outcome string) {
	GeocoderRequests.WithLabelValues(operation, outcome).Inc()
}
