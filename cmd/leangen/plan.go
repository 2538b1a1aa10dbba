package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wippyai/leanbuffer/planner"
)

var planPlain bool

func init() {
	planCmd.Flags().BoolVar(&planPlain, "plain", false, "tab-separated output even on a terminal")
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show slots, commit order and codecs for every record",
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

		out := cmd.OutOrStdout()
		if planPlain || out != os.Stdout || !isTerminal(os.Stdout) {
			writePlainPlans(out, plans)
			return nil
		}
		writeStyledPlans(out, plans)
		return nil
	},
}

var planHeaders = []string{"field", "type", "slot", "priority", "commit", "encode", "decode"}

func planRows(p *planner.Plan) [][]string {
	rows := make([][]string, len(p.Fields))
	for i, f := range p.Fields {
		rows[i] = []string{
			f.Name,
			f.Type.String(),
			strconv.Itoa(int(f.Slot)),
			strconv.Itoa(f.Priority),
			strconv.Itoa(p.CommitPosition(i)),
			f.Codec.Encode.String(),
			f.Codec.Decode.String(),
		}
	}
	return rows
}

func planSummary(p *planner.Plan) string {
	return fmt.Sprintf("%s: %d fields, vtable %d bytes, inline %d bytes, padding %d",
		p.Record, len(p.Fields), p.VtableSize(), p.Layout.Size, p.Layout.Padding)
}

// writePlainPlans prints one tab-separated row per field, prefixed by the
// record name.
func writePlainPlans(w io.Writer, plans []*planner.Plan) {
	fmt.Fprintln(w, "record\t"+strings.Join(planHeaders, "\t"))
	for _, p := range plans {
		for _, row := range planRows(p) {
			fmt.Fprintln(w, p.Record+"\t"+strings.Join(row, "\t"))
		}
	}
}

var (
	recordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func writeStyledPlans(w io.Writer, plans []*planner.Plan) {
	for i, p := range plans {
		if i > 0 {
			fmt.Fprintln(w)
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))).
			Headers(planHeaders...).
			Rows(planRows(p)...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		fmt.Fprintln(w, recordStyle.Render(p.Record))
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w, summaryStyle.Render(planSummary(p)))
	}
}
