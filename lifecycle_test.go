package odcalc_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc"
	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/testutil"
)

// TestNoGoroutineLeaks verifies that the row workers stop when Close is
// called.
func TestNoGoroutineLeaks(t *testing.T) {
	tests := []struct {
		name     string
		opts     []odcalc.Option
		maxLeaks int // Allow small variance (runtime background goroutines)
	}{
		{"default", nil, 2},
		{"8 workers", []odcalc.Option{odcalc.WithWorkers(8), odcalc.WithParallelThreshold(1)}, 2},
		{"limited", []odcalc.Option{odcalc.WithMaxConcurrentEvaluations(2), odcalc.WithMemoryLimit(1 << 20)}, 2},
	}

	rng := testutil.NewRNG(3)
	zones := testutil.Zones(64)
	a := rng.Matrix(zones, zones, 0, 1)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runtime.GC()
			time.Sleep(10 * time.Millisecond)
			before := runtime.NumGoroutine()

			e, err := odcalc.New(tc.opts...)
			require.NoError(t, err)

			_, err = e.Evaluate(context.Background(), "Transpose(A) * A + SumRows(A)", eval.Matrix("A", a))
			require.NoError(t, err)

			require.NoError(t, e.Close())

			// Give workers time to observe the closed channel.
			time.Sleep(50 * time.Millisecond)
			runtime.GC()

			after := runtime.NumGoroutine()
			assert.LessOrEqual(t, after-before, tc.maxLeaks, "goroutines before=%d after=%d", before, after)
		})
	}
}
