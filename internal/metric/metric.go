// Package metric records GraphQL endpoint metrics in Prometheus.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "wpgraphql"

// DurationBuckets are the histogram buckets of request durations, in seconds.
var DurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Prometheus implements the endpoint's Metrics on a Prometheus registerer.
type Prometheus struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	fieldErrors prometheus.Counter
}

// NewPrometheus registers the endpoint collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of GraphQL requests by HTTP status",
		}, []string{"status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "GraphQL request duration in seconds",
			Buckets:   DurationBuckets,
		}, []string{"status"}),
		fieldErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_errors_total",
			Help:      "Total number of errors reported in GraphQL responses",
		}),
	}

	for _, c := range []prometheus.Collector{p.requests, p.duration, p.fieldErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) MeasureRequest(status int, fieldErrors int, duration time.Duration) {
	code := strconv.Itoa(status)
	p.requests.WithLabelValues(code).Inc()
	p.duration.WithLabelValues(code).Observe(duration.Seconds())
	if fieldErrors > 0 {
		p.fieldErrors.Add(float64(fieldErrors))
	}
}

// Noop discards every measurement.
type Noop struct{}

func (Noop) MeasureRequest(int, int, time.Duration) {}

// NewServer serves the metrics of registry on listenAddr at path.
func NewServer(logger *zap.Logger, listenAddr string, path string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          zap.NewStdLog(logger),
		Registry:          registry,
		Timeout:           10 * time.Second,
	}))

	svr := &http.Server{
		Addr:              listenAddr,
		ReadTimeout:       1 * time.Minute,
		WriteTimeout:      1 * time.Minute,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       30 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
		Handler:           mux,
	}

	logger.Info("Prometheus metrics enabled", zap.String("listen_addr", svr.Addr), zap.String("endpoint", path))

	return svr
}
