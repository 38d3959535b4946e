//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	detect(Features{
		AVX2FMA: cpu.X86.HasAVX2 && cpu.X86.HasFMA,
		AVX512:  cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	})
}
