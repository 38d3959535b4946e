package simd

import (
	"os"
	"strings"
)

// EnvKernels names the environment variable that forces a kernel family.
// Accepted values are "generic", "batched" and "auto".
const EnvKernels = "ODCALC_SIMD"

// Mode is a kernel family.
type Mode uint8

const (
	// ModeGeneric runs one element per loop iteration.
	ModeGeneric Mode = iota
	// ModeBatched runs fixed-width lane blocks the compiler can vectorize.
	ModeBatched
)

func (m Mode) String() string {
	switch m {
	case ModeGeneric:
		return "generic"
	case ModeBatched:
		return "batched"
	default:
		return "unknown"
	}
}

// Features are the CPU vector extensions found at startup.
type Features struct {
	ASIMD   bool // arm64 NEON
	SVE2    bool // arm64
	AVX2FMA bool // amd64 AVX2 together with FMA3
	AVX512  bool // amd64 AVX-512 F and BW
}

// Vector reports whether any vector extension is present.
func (f Features) Vector() bool {
	return f.ASIMD || f.SVE2 || f.AVX2FMA || f.AVX512
}

func (f Features) String() string {
	var names []string
	for _, x := range []struct {
		on   bool
		name string
	}{
		{f.ASIMD, "asimd"},
		{f.SVE2, "sve2"},
		{f.AVX2FMA, "avx2+fma"},
		{f.AVX512, "avx512"},
	} {
		if x.on {
			names = append(names, x.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

var (
	features   Features
	selected   Mode
	overridden bool
)

// detect records the platform features and picks the kernel family. It is
// called once from the per-architecture init.
func detect(f Features) {
	features = f
	selected, overridden = selectMode(f, os.Getenv(EnvKernels))
}

// selectMode prefers batched kernels on vector hardware unless env names a
// family. Unknown values fall back to auto-selection.
func selectMode(f Features, env string) (mode Mode, forced bool) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "generic":
		return ModeGeneric, true
	case "batched":
		return ModeBatched, true
	}
	if f.Vector() {
		return ModeBatched, false
	}
	return ModeGeneric, false
}

// CPUFeatures returns the vector extensions detected on this machine.
func CPUFeatures() Features { return features }

// SelectedMode returns the kernel family chosen at startup.
func SelectedMode() Mode { return selected }

// ActiveMode returns the kernel family actually installed. It differs from
// SelectedMode only in noasm builds, which always run generic kernels.
func ActiveMode() Mode {
	if batched {
		return ModeBatched
	}
	return ModeGeneric
}

// IsOverridden reports whether ODCALC_SIMD chose the kernel family.
func IsOverridden() bool { return overridden }

// Lanes returns the number of elements the active kernels process per step.
func Lanes() int {
	if !batched {
		return 1
	}
	return lanes
}
