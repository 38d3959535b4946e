package odcalc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/odcalc/eval"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordCompile(2*time.Microsecond, false, nil)
	m.RecordCompile(4*time.Microsecond, true, nil)
	m.RecordCompile(6*time.Microsecond, false, errors.New("bad"))
	m.RecordEvaluate(time.Millisecond, eval.KindMatrix, nil)
	m.RecordEvaluate(3*time.Millisecond, eval.KindScalar, nil)
	m.RecordEvaluate(2*time.Millisecond, eval.KindError, errors.New("bad"))

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.CompileCount)
	assert.Equal(t, int64(1), stats.CompileCacheHits)
	assert.Equal(t, int64(1), stats.CompileErrors)
	assert.Equal(t, int64(4000), stats.CompileAvgNanos)
	assert.Equal(t, int64(3), stats.EvalCount)
	assert.Equal(t, int64(1), stats.EvalErrors)
	assert.Equal(t, int64(2_000_000), stats.EvalAvgNanos)
	assert.Equal(t, int64(1), stats.MatrixResults)
	assert.Equal(t, int64(1), stats.ScalarResults)
	assert.Zero(t, stats.VectorResults)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.CompileAvgNanos)
	assert.Zero(t, stats.EvalAvgNanos)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordCompile(time.Second, true, nil)
	m.RecordEvaluate(time.Second, eval.KindVector, nil)
}
