package simd

import (
	"math/rand"
	"strconv"
	"testing"
)

// Compare kernel families by running twice:
//
//   go test ./internal/simd -run '^$' -bench . -benchmem
//   ODCALC_SIMD=generic go test ./internal/simd -run '^$' -bench . -benchmem

var benchSizes = []int{64, 1024, 1 << 16}

func BenchmarkAdd(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	for _, n := range benchSizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			x, y, dst := randFloats(r, n), randFloats(r, n), make([]float32, n)
			b.SetBytes(int64(n * 4 * 3))
			for b.Loop() {
				Add(dst, x, y)
			}
		})
	}
}

func BenchmarkFMA(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	for _, n := range benchSizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			x, y, z, dst := randFloats(r, n), randFloats(r, n), randFloats(r, n), make([]float32, n)
			b.SetBytes(int64(n * 4 * 4))
			for b.Loop() {
				FMA(dst, x, y, z)
			}
		})
	}
}

func BenchmarkSum(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	for _, n := range benchSizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			x := randFloats(r, n)
			b.SetBytes(int64(n * 4))
			var sink float32
			for b.Loop() {
				sink += Sum(x)
			}
			_ = sink
		})
	}
}
