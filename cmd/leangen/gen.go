package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wippyai/leanbuffer/gen"
)

var (
	genOut     string
	genPackage string
	genOutput  string
	genSplit   bool
)

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", ".", "output directory")
	genCmd.Flags().StringVarP(&genPackage, "package", "p", "", "Go package name, overrides the schema")
	genCmd.Flags().StringVar(&genOutput, "output", "", "merged file name, overrides the schema")
	genCmd.Flags().BoolVar(&genSplit, "split", false, "write one <record>_lb_gen.go file per record")
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate converters for every record in the schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadSchema()
		if err != nil {
			return err
		}

		opts := gen.DefaultOptions()
		opts.Dir = genOut
		opts.Split = genSplit
		if f.Package != "" {
			opts.Package = f.Package
		}
		if f.Output != "" {
			opts.Output = f.Output
		}
		if genPackage != "" {
			opts.Package = genPackage
		}
		if genOutput != "" {
			opts.Output = genOutput
		}

		res, err := gen.Generate(cmd.Context(), f.Records, opts)
		if err != nil {
			return err
		}
		for _, path := range slices.Sorted(maps.Keys(res.Files)) {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}
