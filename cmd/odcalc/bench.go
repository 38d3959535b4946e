package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/odcalc"
	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/testutil"
)

type benchConfig struct {
	zones       int
	iterations  int
	warmup      int
	seed        int64
	metricsAddr string
}

func newBenchCmd(v *viper.Viper) *cobra.Command {
	var cfg benchConfig

	cmd := &cobra.Command{
		Use:   "bench FORMULA",
		Short: "Benchmark a formula on random square matrices",
		Long: `Benchmark a formula. Every variable in the formula is bound to a random
ZONES x ZONES matrix with values in [0, 1).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engineOptions(v)
			if err != nil {
				return err
			}

			if cfg.metricsAddr != "" {
				logger, err := newLogger(v)
				if err != nil {
					return err
				}
				reg := prometheus.NewRegistry()
				opts = append(opts, odcalc.WithMetricsCollector(newPromCollector(reg)))

				stop, err := serveMetrics(cfg.metricsAddr, reg, logger.Logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			engine, err := odcalc.New(opts...)
			if err != nil {
				return err
			}
			defer engine.Close()

			return runBench(cmd, engine, args[0], cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.zones, "zones", 1000, "zones per matrix axis")
	flags.IntVar(&cfg.iterations, "iterations", 50, "measured evaluations")
	flags.IntVar(&cfg.warmup, "warmup", 3, "unmeasured evaluations before measuring")
	flags.Int64Var(&cfg.seed, "seed", 42, "random seed")
	flags.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while benchmarking")

	return cmd
}

func runBench(cmd *cobra.Command, engine *odcalc.Engine, formula string, cfg benchConfig) error {
	if cfg.iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}

	ex, err := engine.Compile(formula)
	if err != nil {
		return err
	}

	rng := testutil.NewRNG(cfg.seed)
	zones := testutil.Zones(cfg.zones)

	var sources []eval.Source
	for _, name := range ex.Variables() {
		sources = append(sources, eval.Matrix(name, rng.Matrix(zones, zones, 0, 1)))
	}

	ctx := cmd.Context()
	for range cfg.warmup {
		if _, err := engine.EvaluateExpression(ctx, ex, sources...); err != nil {
			return err
		}
	}

	latencies := make(stats.Float64Data, 0, cfg.iterations)
	start := time.Now()
	for range cfg.iterations {
		t := time.Now()
		if _, err := engine.EvaluateExpression(ctx, ex, sources...); err != nil {
			return err
		}
		latencies = append(latencies, float64(time.Since(t).Nanoseconds()))
	}
	total := time.Since(start)

	summary, err := summarize(latencies)
	if err != nil {
		return err
	}

	elements := uint64(cfg.zones) * uint64(cfg.zones)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "formula:    %s\n", ex)
	fmt.Fprintf(out, "matrices:   %d x %s (%s elements, %s each)\n",
		len(sources), humanize.Comma(int64(cfg.zones)), humanize.Comma(int64(elements)), humanize.IBytes(elements*4))
	fmt.Fprintf(out, "iterations: %s in %s\n", humanize.Comma(int64(cfg.iterations)), total.Round(time.Millisecond))
	fmt.Fprintf(out, "throughput: %s evals/s, %s elements/s\n",
		humanize.CommafWithDigits(float64(cfg.iterations)/total.Seconds(), 1),
		humanize.SIWithDigits(float64(elements)*float64(cfg.iterations)/total.Seconds(), 2, ""))
	fmt.Fprintf(out, "latency:    mean %s  p50 %s  p90 %s  p99 %s  max %s\n",
		summary.mean, summary.p50, summary.p90, summary.p99, summary.max)

	return nil
}

type latencySummary struct {
	mean, p50, p90, p99, max time.Duration
}

func summarize(nanos stats.Float64Data) (latencySummary, error) {
	var (
		s   latencySummary
		err error
	)

	pick := func(dst *time.Duration, f func() (float64, error)) {
		if err != nil {
			return
		}
		var v float64
		v, err = f()
		*dst = time.Duration(v)
	}

	pick(&s.mean, nanos.Mean)
	pick(&s.p50, func() (float64, error) { return nanos.Percentile(50) })
	pick(&s.p90, func() (float64, error) { return nanos.Percentile(90) })
	pick(&s.p99, func() (float64, error) { return nanos.Percentile(99) })
	pick(&s.max, nanos.Max)

	return s, err
}
