package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/model"
	"github.com/hupe1980/odcalc/testutil"
)

// Fused multiply-add must match the separate multiply and add it replaces
// for every combination of operand shapes.
func TestFusedMatchesSeparate(t *testing.T) {
	rng := testutil.NewRNG(99)
	rows, cols := testutil.Zones(33), testutil.Zones(17)
	sources := []Source{
		Matrix("M", rng.Matrix(rows, cols, -1, 1)),
		Matrix("N", rng.Matrix(rows, cols, -1, 1)),
		Matrix("P", rng.Matrix(rows, cols, -1, 1)),
		Vector("H", rng.Vector(cols, -1, 1), model.Horizontal),
		Vector("G", rng.Vector(cols, -1, 1), model.Horizontal),
		Vector("V", rng.Vector(rows, -1, 1), model.Vertical),
		Scalar("s", 1.5),
		Scalar("k", -0.25),
	}

	formulas := []string{
		"M * N + P",
		"P + M * N",
		"M * s + P",
		"s * M + k",
		"M * N + s",
		"M * H + V",
		"V * s + M",
		"H * G + M",
		"H * G + s",
		"H * s + G",
		"s * k + M",
		"s * k + H",
		"s * k + s",
		"M * V + H * N",
		"(M + N) * P + SumColumns(M)",
	}

	for name, ev := range evaluators(t) {
		t.Run(name, func(t *testing.T) {
			for _, f := range formulas {
				t.Run(f, func(t *testing.T) {
					e, err := expr.Compile(f)
					require.NoError(t, err)
					require.True(t, strings.HasPrefix(e.String(), "fma("), e.String())

					tree, err := expr.Parse(f)
					require.NoError(t, err)

					fused := ev.EvaluateExpression(e, sources...)
					separate := ev.Evaluate(tree, sources...)
					require.False(t, fused.IsError(), "%v", fused.Err())
					require.False(t, separate.IsError(), "%v", separate.Err())

					assert.Equal(t, separate.Kind(), fused.Kind())
					assert.Equal(t, separate.Direction(), fused.Direction())
					if fused.Kind() == KindScalar {
						assert.InDelta(t, separate.Scalar(), fused.Scalar(), 1e-5)
						return
					}
					assert.InDeltaSlice(t, separate.data(), fused.data(), 1e-5)
				})
			}
		})
	}
}

func TestFusedErrors(t *testing.T) {
	ev := New()
	defer ev.Close()
	src := broadcastSources()

	r := run(t, ev, "A * U + B", src...)
	assert.ErrorIs(t, r.Err(), ErrTypeMismatch)

	r = run(t, ev, "A * B + L", src...)
	assert.ErrorIs(t, r.Err(), ErrTypeMismatch)

	requireMatrix(t, run(t, ev, "A * B + H", src...), []float32{12, 28}, []float32{28, 52})
	requireMatrix(t, run(t, ev, "A * 2 + V", src...), []float32{12, 14}, []float32{26, 28})
}
