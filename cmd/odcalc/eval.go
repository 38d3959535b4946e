package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/odcalc"
	"github.com/hupe1980/odcalc/eval"
)

func newEvalCmd(v *viper.Viper) *cobra.Command {
	var (
		matrices []string
		vectors  []string
		scalars  []string
	)

	cmd := &cobra.Command{
		Use:   "eval FORMULA",
		Short: "Evaluate a formula against inline data sources",
		Long: `Evaluate a formula against data sources given on the command line.

  --matrix NAME=RxC:v1,v2,...   row-major matrix over zones 1..R x 1..C
  --vector NAME=v1,v2,...[:h|v] vector over zones 1..N, optionally tagged
                                horizontal or vertical
  --scalar NAME=value

Example:

  odcalc eval "SumRows(A * B)" --matrix A=2x2:1,2,3,4 --matrix B=2x2:2,4,6,8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := parseSources(matrices, vectors, scalars)
			if err != nil {
				return err
			}

			opts, err := engineOptions(v)
			if err != nil {
				return err
			}

			engine, err := odcalc.New(opts...)
			if err != nil {
				return err
			}
			defer engine.Close()

			r, err := engine.Evaluate(cmd.Context(), args[0], sources...)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), r)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&matrices, "matrix", nil, "matrix source NAME=RxC:values")
	flags.StringArrayVar(&vectors, "vector", nil, "vector source NAME=values[:h|v]")
	flags.StringArrayVar(&scalars, "scalar", nil, "scalar source NAME=value")

	return cmd
}

func printResult(w io.Writer, r eval.Result) {
	switch r.Kind() {
	case eval.KindScalar:
		fmt.Fprintln(w, formatValue(r.Scalar()))
	case eval.KindVector:
		fmt.Fprintf(w, "%s: %s\n", r.Direction(), formatRow(r.Vector().Data()))
	case eval.KindMatrix:
		m := r.Matrix()
		for i := range m.Rows() {
			fmt.Fprintln(w, formatRow(m.Row(i)))
		}
	default:
		fmt.Fprintln(w, r)
	}
}

func formatRow(row []float32) string {
	parts := make([]string, len(row))
	for i, x := range row {
		parts[i] = formatValue(x)
	}
	return strings.Join(parts, "\t")
}

func formatValue(x float32) string {
	return strconv.FormatFloat(float64(x), 'g', -1, 32)
}
