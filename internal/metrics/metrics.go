package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call modes.
const (
	ModeComplete = "complete"
	ModeStream   = "stream"
)

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by route and status",
}, []string{"path", "status"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Time spent serving a request, by route.",
	Buckets: []float64{.01, .05, .1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"path"})

var upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "upstream_request_duration_seconds",
	Help:    "Latency of model-service calls.",
	Buckets: []float64{.25, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"mode"})

var upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "upstream_errors_total",
	Help: "Failed model-service calls.",
}, []string{"mode"})

var extractions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "document_extractions_total",
	Help: "Text extraction attempts by format and result.",
}, []string{"format", "result"})

var StreamChunks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "stream_chunks_total",
	Help: "Chunks relayed to streaming clients.",
})

func ObserveUpstream(mode string, elapsed time.Duration, err error) {
	upstreamLatency.WithLabelValues(mode).Observe(elapsed.Seconds())
	if err != nil {
		upstreamErrors.WithLabelValues(mode).Inc()
	}
}

func RecordExtraction(format string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	extractions.WithLabelValues(format, result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
