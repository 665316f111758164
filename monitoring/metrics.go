package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartrail_http_requests_total",
		Help: "HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartrail_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartrail_api_cache_hits_total",
		Help: "RailRadar response cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartrail_api_cache_misses_total",
		Help: "RailRadar response cache misses",
	})

	AvailabilityQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartrail_availability_queries_total",
		Help: "Class availability aggregations performed",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
