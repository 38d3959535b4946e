package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCompileCmd(t *testing.T) {
	out, err := execute(t, "compile", "A * B + C")
	require.NoError(t, err)
	assert.Contains(t, out, "fma(A, B, C)")
	assert.Contains(t, out, "variables: A, B, C")

	_, err = execute(t, "compile", "A +")
	assert.Error(t, err)
}

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			[]string{"eval", "A + B", "--matrix", "A=2x2:1,2,3,4", "--matrix", "B=2x2:2,4,6,8"},
			"3\t6\n9\t12\n",
		},
		{
			[]string{"eval", "SumRows(A)", "--matrix", "A=2x2:1,2,3,4"},
			"vertical: 3\t7\n",
		},
		{
			[]string{"eval", "Sum(A) * k", "--matrix", "A=2x2:1,2,3,4", "--scalar", "k=0.5"},
			"5\n",
		},
		{
			[]string{"eval", "A * G", "--matrix", "A=2x2:1,2,3,4", "--vector", "G=10,100:h"},
			"10\t200\n30\t400\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.args[1], func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestEvalCmdErrors(t *testing.T) {
	_, err := execute(t, "eval", "A + X", "--matrix", "A=1x1:1")
	assert.Error(t, err)

	_, err = execute(t, "eval", "A", "--matrix", "A=1x1")
	assert.Error(t, err)

	_, err = execute(t, "eval", "A", "--matrix", "A=1x1:1", "--log-level", "loud")
	assert.Error(t, err)

	_, err = execute(t, "eval", "A", "--matrix", "A=1x1:1", "--memory-limit", "lots")
	assert.Error(t, err)
}

func TestEvalCmdMemoryLimit(t *testing.T) {
	_, err := execute(t, "eval", "Transpose(A) + Transpose(A)", "--matrix", "A=2x2:1,2,3,4", "--memory-limit", "20B")
	assert.Error(t, err)

	out, err := execute(t, "eval", "Transpose(A) + Transpose(A)", "--matrix", "A=2x2:1,2,3,4", "--memory-limit", "1KiB")
	require.NoError(t, err)
	assert.Equal(t, "2\t6\n4\t8\n", out)
}

func TestEnvConfig(t *testing.T) {
	t.Setenv("ODCALC_LOG_FORMAT", "xml")

	_, err := execute(t, "compile", "A")
	assert.Error(t, err)
}

func TestBenchCmd(t *testing.T) {
	out, err := execute(t, "bench", "A * B + A", "--zones", "16", "--iterations", "5", "--warmup", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "fma(A, B, A)")
	assert.Contains(t, out, "p99")
	assert.Contains(t, out, "1.0 KiB each")

	_, err = execute(t, "bench", "A", "--iterations", "0")
	assert.Error(t, err)
}

func TestSIMDCmd(t *testing.T) {
	out, err := execute(t, "simd")
	require.NoError(t, err)
	assert.Contains(t, out, "kernels:")
	assert.Contains(t, out, "ODCALC_SIMD")
}
