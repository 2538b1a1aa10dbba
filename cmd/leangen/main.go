// Command leangen plans record schemas and generates table converters.
//
//	leangen gen -s schema.yaml -o ./model
//	leangen plan -s schema.yaml
//	leangen check -s schema.toml
//	leangen merge -p model -o leanbuffer_gen.go a_lb_gen.go b_lb_gen.go
//	leangen explore -s schema.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/leanbuffer/codec"
	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/gen"
	"github.com/wippyai/leanbuffer/planner"
	"github.com/wippyai/leanbuffer/schema"
)

var (
	schemaPath string
	verbose    bool
	log        = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "leangen",
	Short:        "Plan record schemas and generate table converters",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log planning and generation steps")
}

func registerCommands() {
	if rootCmd.HasSubCommands() {
		return
	}
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(exploreCmd)
}

func main() {
	registerCommands()

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging installs one logger in every library package.
func setupLogging(verbose bool) error {
	var err error
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	planner.SetLogger(log)
	codec.SetLogger(log)
	gen.SetLogger(log)
	return nil
}

func loadSchema() (*schema.File, error) {
	if schemaPath == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "no schema given, use --schema")
	}
	f, err := schema.Load(schemaPath)
	if err != nil {
		return nil, err
	}
	log.Debug("schema loaded",
		zap.String("path", schemaPath),
		zap.Int("records", len(f.Records)))
	return f, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
