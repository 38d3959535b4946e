package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/odcalc"
)

func newCompileCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "compile FORMULA",
		Short: "Compile a formula and print its optimized tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engineOptions(v)
			if err != nil {
				return err
			}

			engine, err := odcalc.New(opts...)
			if err != nil {
				return err
			}
			defer engine.Close()

			ex, err := engine.Compile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ex)
			fmt.Fprintf(out, "variables: %s\n", strings.Join(ex.Variables(), ", "))
			return nil
		},
	}
}
