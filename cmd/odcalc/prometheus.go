package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/odcalc"
	"github.com/hupe1980/odcalc/eval"
)

var _ odcalc.MetricsCollector = (*promCollector)(nil)

// promCollector exports engine metrics to Prometheus.
type promCollector struct {
	compileLatency *prometheus.HistogramVec
	evalLatency    *prometheus.HistogramVec
	cacheHits      prometheus.Counter
}

func newPromCollector(reg prometheus.Registerer) *promCollector {
	c := &promCollector{
		compileLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "odcalc_compile_latency_seconds",
			Help:    "Latency of formula compilation, including cache lookups",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"status"}),
		evalLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "odcalc_evaluate_latency_seconds",
			Help:    "Latency of formula evaluation by result kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "status"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "odcalc_compile_cache_hits_total",
			Help: "Compile requests served from the formula cache",
		}),
	}

	reg.MustRegister(c.compileLatency, c.evalLatency, c.cacheHits)
	return c
}

func (c *promCollector) RecordCompile(d time.Duration, cached bool, err error) {
	if cached {
		c.cacheHits.Inc()
	}
	c.compileLatency.WithLabelValues(status(err)).Observe(d.Seconds())
}

func (c *promCollector) RecordEvaluate(d time.Duration, kind eval.Kind, err error) {
	c.evalLatency.WithLabelValues(kind.String(), status(err)).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// serveMetrics exposes reg on addr under /metrics until the returned stop
// function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
