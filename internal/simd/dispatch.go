//go:build !noasm

package simd

// capability_*.go sorts before this file, so the mode is already selected.
func init() {
	if selected == ModeBatched {
		setBatchedKernels()
	}
}
