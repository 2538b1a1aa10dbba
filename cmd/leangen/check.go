package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/leanbuffer/gen"
	"github.com/wippyai/leanbuffer/planner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Plan and render every record without writing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadSchema()
		if err != nil {
			return err
		}

		plans, err := planner.NewCompiler().CompileAll(f.Records)
		if err != nil {
			return err
		}

		opts := gen.DefaultOptions()
		if f.Package != "" {
			opts.Package = f.Package
		}
		fragments, err := gen.Render(cmd.Context(), plans, opts)
		if err != nil {
			return err
		}
		if _, err := gen.Merge(opts.Package, fragments...); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d records\n", len(plans))
		return nil
	},
}
