package testutil

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/hupe1980/odcalc/internal/simd"
	"github.com/hupe1980/odcalc/model"
)

// RNG is a seeded, goroutine-safe source of test data.
type RNG struct {
	mu   sync.Mutex
	seed int64
	src  *rand.PCG
	r    *rand.Rand
}

// NewRNG creates an RNG that replays the same sequence for the same seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &RNG{seed: seed, src: src, r: rand.New(src)}
}

// Reset rewinds the RNG to its seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src.Seed(uint64(r.seed), uint64(r.seed)^0x9e3779b97f4a7c15)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// FillUniform fills dst with values in [lo, hi).
func (r *RNG) FillUniform(dst []float32, lo, hi float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := hi - lo
	for i := range dst {
		dst[i] = lo + r.r.Float32()*span
	}
}

// Vector returns a vector over cats with values in [lo, hi).
func (r *RNG) Vector(cats *model.Categories, lo, hi float32) *model.Vector {
	v := model.NewVector(cats)
	r.FillUniform(v.Data(), lo, hi)
	return v
}

// Matrix returns a rows x cols matrix with values in [lo, hi).
func (r *RNG) Matrix(rows, cols *model.Categories, lo, hi float32) *model.Matrix {
	m := model.NewMatrix(rows, cols)
	r.FillUniform(m.Data(), lo, hi)
	return m
}

// SkewedMatrix spreads trips over an origin-destination matrix. Origins are
// uniform; destination k is drawn with weight 1/(k+1)^s, so a few
// destinations attract most of the demand. The matrix total equals trips.
func (r *RNG) SkewedMatrix(rows, cols *model.Categories, s float64, trips int) *model.Matrix {
	m := model.NewMatrix(rows, cols)
	data := m.Data()
	n := cols.Len()
	cdf := zipfCDF(n, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	for range trips {
		row := r.r.IntN(rows.Len())
		data[row*n+drawIndex(cdf, r.r.Float64())]++
	}
	return m
}

// Zipf draws one index in [0, n) with weight 1/(k+1)^s.
func (r *RNG) Zipf(n int, s float64) int {
	if n <= 1 {
		return 0
	}
	cdf := zipfCDF(n, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	return drawIndex(cdf, r.r.Float64())
}

// zipfCDF returns the normalized cumulative weights of a Zipf law over n
// outcomes.
func zipfCDF(n int, s float64) []float64 {
	cdf := make([]float64, n)
	var acc float64
	for k := range n {
		acc += math.Pow(float64(k+1), -s)
		cdf[k] = acc
	}
	for k := range cdf {
		cdf[k] /= acc
	}
	return cdf
}

func drawIndex(cdf []float64, u float64) int {
	i, _ := slices.BinarySearch(cdf, u)
	return min(i, len(cdf)-1)
}

// Zones returns categories with identifiers 1..n.
func Zones(n int) *model.Categories {
	return model.SequentialCategories(1, n)
}

// Categories is MustNewCategories for test tables.
func Categories(ids ...model.CategoryID) *model.Categories {
	return model.MustNewCategories(ids...)
}

// MatrixOf builds a matrix over fresh zone categories from literal rows.
func MatrixOf(rows ...[]float32) *model.Matrix {
	if len(rows) == 0 {
		return model.NewMatrix(Zones(0), Zones(0))
	}

	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			panic("testutil: ragged matrix literal")
		}
		data = append(data, row...)
	}

	return model.NewMatrixFrom(Zones(len(rows)), Zones(cols), data)
}

// Total sums data.
func Total(data []float32) float64 {
	return float64(simd.Sum(data))
}
