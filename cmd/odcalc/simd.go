package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/odcalc/internal/simd"
)

func newSIMDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simd",
		Short: "Print SIMD kernel diagnostics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GOOS=%s GOARCH=%s GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
			fmt.Fprintf(out, "%s=%q\n", simd.EnvKernels, os.Getenv(simd.EnvKernels))
			fmt.Fprintf(out, "cpu features: %s\n", simd.CPUFeatures())
			fmt.Fprintf(out, "kernels:      %s (selected %s, override: %v)\n", simd.ActiveMode(), simd.SelectedMode(), simd.IsOverridden())
			fmt.Fprintf(out, "lanes:        %d (%s per step)\n", simd.Lanes(), humanize.IBytes(uint64(simd.Lanes())*4))
		},
	}
}
