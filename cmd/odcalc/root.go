package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/odcalc"
)

// Config keys. Every key can be set by flag, by config file or by an
// ODCALC_ prefixed environment variable (dashes become underscores).
const (
	keyConfig            = "config"
	keyLogLevel          = "log-level"
	keyLogFormat         = "log-format"
	keyWorkers           = "workers"
	keyParallelThreshold = "parallel-threshold"
	keyCacheSize         = "cache-size"
	keyMemoryLimit       = "memory-limit"
	keyMaxConcurrent     = "max-concurrent"
	keyStrict            = "strict-categories"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "odcalc",
		Short:         "Evaluate formulas over origin-destination matrices",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(v)
		},
	}

	pFlags := root.PersistentFlags()
	pFlags.String(keyConfig, "", "config file (yaml, toml or json)")
	pFlags.String(keyLogLevel, "warn", "log level: debug, info, warn, error")
	pFlags.String(keyLogFormat, "text", "log format: text or json")
	pFlags.Int(keyWorkers, 0, "row workers per matrix operation (0 = GOMAXPROCS)")
	pFlags.Int(keyParallelThreshold, 1<<14, "elements from which matrix kernels run in parallel")
	pFlags.Int(keyCacheSize, odcalc.DefaultCacheSize, "compiled formulas to keep")
	pFlags.String(keyMemoryLimit, "", "limit for intermediate buffers, e.g. 512MiB (empty = unlimited)")
	pFlags.Int64(keyMaxConcurrent, 0, "concurrent evaluations (0 = unlimited)")
	pFlags.Bool(keyStrict, false, "require operands to share category sets")

	if err := v.BindPFlags(pFlags); err != nil {
		panic(err)
	}

	root.AddCommand(
		newCompileCmd(v),
		newEvalCmd(v),
		newBenchCmd(v),
		newSIMDCmd(),
	)

	return root
}

func loadConfig(v *viper.Viper) error {
	v.SetEnvPrefix("ODCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds the logger selected by log-level and log-format.
func newLogger(v *viper.Viper) (*odcalc.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}

	switch format := v.GetString(keyLogFormat); format {
	case "text":
		return odcalc.NewTextLogger(level), nil
	case "json":
		return odcalc.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("%s: unknown format %q", keyLogFormat, format)
	}
}

// engineOptions translates the resolved configuration into engine options.
func engineOptions(v *viper.Viper) ([]odcalc.Option, error) {
	logger, err := newLogger(v)
	if err != nil {
		return nil, err
	}

	opts := []odcalc.Option{
		odcalc.WithLogger(logger),
		odcalc.WithWorkers(v.GetInt(keyWorkers)),
		odcalc.WithParallelThreshold(v.GetInt(keyParallelThreshold)),
		odcalc.WithCacheSize(v.GetInt(keyCacheSize)),
		odcalc.WithMaxConcurrentEvaluations(v.GetInt64(keyMaxConcurrent)),
		odcalc.WithStrictCategories(v.GetBool(keyStrict)),
	}

	if s := v.GetString(keyMemoryLimit); s != "" {
		limit, err := humanize.ParseBytes(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyMemoryLimit, err)
		}
		opts = append(opts, odcalc.WithMemoryLimit(int64(limit)))
	}

	return opts, nil
}
