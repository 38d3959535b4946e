package main

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc/eval"
)

func TestPromCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newPromCollector(reg)

	c.RecordCompile(time.Millisecond, false, nil)
	c.RecordCompile(time.Microsecond, true, nil)
	c.RecordCompile(time.Microsecond, false, errors.New("syntax"))
	c.RecordEvaluate(time.Millisecond, eval.KindMatrix, nil)
	c.RecordEvaluate(time.Millisecond, eval.KindScalar, nil)
	c.RecordEvaluate(time.Millisecond, eval.KindError, errors.New("boom"))

	assert.InDelta(t, 1, promtest.ToFloat64(c.cacheHits), 0)
	assert.Equal(t, 2, promtest.CollectAndCount(c.compileLatency))
	assert.Equal(t, 3, promtest.CollectAndCount(c.evalLatency))

	assert.Panics(t, func() { newPromCollector(reg) })
}

func TestServeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newPromCollector(reg)
	c.RecordEvaluate(time.Millisecond, eval.KindVector, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	stop, err := serveMetrics(addr, reg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer stop()

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `odcalc_evaluate_latency_seconds_count{kind="vector",status="success"} 1`)
}

func TestBenchCmdMetrics(t *testing.T) {
	out, err := execute(t, "bench", "A + B", "--zones", "8", "--iterations", "3", "--warmup", "0", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "(A + B)")
}
