package odcalc

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/odcalc/eval"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    evalHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordEvaluate(d time.Duration, kind eval.Kind, err error) {
//	    p.evalHistogram.WithLabelValues(kind.String()).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordCompile is called after each compile request. cached reports a
	// formula cache hit, err is nil if successful.
	RecordCompile(duration time.Duration, cached bool, err error)

	// RecordEvaluate is called after each evaluation with the kind of the
	// result (eval.KindError on failure).
	RecordEvaluate(duration time.Duration, kind eval.Kind, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCompile(time.Duration, bool, error)       {}
func (NoopMetricsCollector) RecordEvaluate(time.Duration, eval.Kind, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CompileCount      atomic.Int64
	CompileCacheHits  atomic.Int64
	CompileErrors     atomic.Int64
	CompileTotalNanos atomic.Int64
	EvalCount         atomic.Int64
	EvalErrors        atomic.Int64
	EvalTotalNanos    atomic.Int64
	ScalarResults     atomic.Int64
	VectorResults     atomic.Int64
	MatrixResults     atomic.Int64
}

// RecordCompile implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompile(duration time.Duration, cached bool, err error) {
	b.CompileCount.Add(1)
	b.CompileTotalNanos.Add(duration.Nanoseconds())
	if cached {
		b.CompileCacheHits.Add(1)
	}
	if err != nil {
		b.CompileErrors.Add(1)
	}
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(duration time.Duration, kind eval.Kind, err error) {
	b.EvalCount.Add(1)
	b.EvalTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EvalErrors.Add(1)
		return
	}

	switch kind {
	case eval.KindScalar:
		b.ScalarResults.Add(1)
	case eval.KindVector:
		b.VectorResults.Add(1)
	case eval.KindMatrix:
		b.MatrixResults.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CompileCount:     b.CompileCount.Load(),
		CompileCacheHits: b.CompileCacheHits.Load(),
		CompileErrors:    b.CompileErrors.Load(),
		CompileAvgNanos:  avg(b.CompileTotalNanos.Load(), b.CompileCount.Load()),
		EvalCount:        b.EvalCount.Load(),
		EvalErrors:       b.EvalErrors.Load(),
		EvalAvgNanos:     avg(b.EvalTotalNanos.Load(), b.EvalCount.Load()),
		ScalarResults:    b.ScalarResults.Load(),
		VectorResults:    b.VectorResults.Load(),
		MatrixResults:    b.MatrixResults.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CompileCount     int64
	CompileCacheHits int64
	CompileErrors    int64
	CompileAvgNanos  int64
	EvalCount        int64
	EvalErrors       int64
	EvalAvgNanos     int64
	ScalarResults    int64
	VectorResults    int64
	MatrixResults    int64
}
