package main

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/leanbuffer/gen"
)

var (
	mergePackage string
	mergeOut     string
)

func init() {
	mergeCmd.Flags().StringVarP(&mergePackage, "package", "p", "", "Go package name (default: package of the first fragment)")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", gen.DefaultOutput, "merged file")
}

var mergeCmd = &cobra.Command{
	Use:   "merge fragment.go...",
	Short: "Merge generated fragments into one file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return gen.MergeFiles(mergePackage, mergeOut, args...)
	},
}
