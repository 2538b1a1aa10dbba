package main

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/spf13/cobra"

	"github.com/wippyai/leanbuffer/codec"
	"github.com/wippyai/leanbuffer/planner"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively encode and decode records of the schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if schemaPath == "" {
			_, err := loadSchema()
			return err
		}
		p := tea.NewProgram(newExploreModel(schemaPath), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type exploreState int

const (
	stateSelectRecord exploreState = iota
	stateInputFields
	stateShowResult
)

type recordInfo struct {
	plan    *planner.Plan
	binding *codec.Binding
}

type exploreModel struct {
	err      error
	filename string
	records  []recordInfo
	inputs   []textinput.Model
	builder  *flatbuffers.Builder
	result   encodeResult
	selected int
	focusIdx int
	state    exploreState
}

type encodeResult struct {
	buf    []byte
	fields []string
}

type loadedMsg struct {
	err     error
	records []recordInfo
}

type encodedMsg struct {
	err    error
	result encodeResult
}

func newExploreModel(filename string) *exploreModel {
	return &exploreModel{
		filename: filename,
		builder:  flatbuffers.NewBuilder(256),
		state:    stateSelectRecord,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return m.loadSchema
}

func (m *exploreModel) loadSchema() tea.Msg {
	f, err := loadSchema()
	if err != nil {
		return loadedMsg{err: err}
	}
	plans, err := planner.NewCompiler().CompileAll(f.Records)
	if err != nil {
		return loadedMsg{err: err}
	}

	records := make([]recordInfo, len(plans))
	for i, p := range plans {
		bd, err := codec.BindDynamic(p)
		if err != nil {
			return loadedMsg{err: err}
		}
		records[i] = recordInfo{plan: p, binding: bd}
	}
	return loadedMsg{records: records}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputFields {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectRecord && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectRecord && m.selected < len(m.records)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectRecord:
				if len(m.records) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.encode
				}
				m.state = stateInputFields
				return m, nil

			case stateInputFields:
				return m, m.encode

			case stateShowResult:
				m.err = nil
				if len(m.inputs) == 0 {
					m.state = stateSelectRecord
					return m, nil
				}
				m.state = stateInputFields
				return m, nil
			}

		case "tab", "shift+tab":
			if m.state == stateInputFields && len(m.inputs) > 1 {
				step := 1
				if msg.String() == "shift+tab" {
					step = len(m.inputs) - 1
				}
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + step) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputFields:
				m.state = stateSelectRecord
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectRecord
				m.inputs = nil
				m.err = nil
			}
			return m, nil
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records

	case encodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInputFields && len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *exploreModel) prepareInputs() {
	p := m.records[m.selected].plan
	m.inputs = make([]textinput.Model, len(p.Fields))
	for i, f := range p.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Type.String()
		ti.Prompt = f.Name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *exploreModel) encode() tea.Msg {
	rec := m.records[m.selected]
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = in.Value()
	}

	res, err := roundTrip(m.builder, rec.binding, values)
	return encodedMsg{result: res, err: err}
}

// roundTrip fills a fresh record from values, encodes it and decodes the
// buffer again.
func roundTrip(b *flatbuffers.Builder, bd *codec.Binding, values []string) (encodeResult, error) {
	p := bd.Plan()
	in := bd.New()
	rv := reflect.ValueOf(in).Elem()
	for i, f := range p.Fields {
		if i >= len(values) {
			break
		}
		if err := parseInto(rv.Field(i), f.Type, values[i]); err != nil {
			return encodeResult{}, fmt.Errorf("%s: %w", f.Name, err)
		}
	}

	buf, err := bd.Flatten(b, in)
	if err != nil {
		return encodeResult{}, err
	}
	res := encodeResult{buf: append([]byte(nil), buf...)}

	out := bd.New()
	if err := bd.Inflate(res.buf, out); err != nil {
		return encodeResult{}, err
	}
	ov := reflect.ValueOf(out).Elem()
	for i, f := range p.Fields {
		res.fields = append(res.fields, f.Name+" = "+formatValue(ov.Field(i), f.Type))
	}
	return res, nil
}

func (m *exploreModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.records == nil {
		return "Loading schema..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("leangen explore"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectRecord:
		b.WriteString("Select a record:\n\n")
		for i, r := range m.records {
			line := "  " + m.formatRecord(r.plan)
			if i == m.selected {
				line = selectedStyle.Render("> " + r.plan.String())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter fill in • q quit"))

	case stateInputFields:
		p := m.records[m.selected].plan
		fmt.Fprintf(&b, "Encoding %s\n\n", nameStyle.Render(p.Record))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(p.Fields[i].Type.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter encode • esc back"))

	case stateShowResult:
		p := m.records[m.selected].plan
		fmt.Fprintf(&b, "%s round trip:\n\n", nameStyle.Render(p.Record))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			fmt.Fprintf(&b, "%d bytes\n", len(m.result.buf))
			b.WriteString(typeStyle.Render(hex.Dump(m.result.buf)))
			b.WriteString("\n")
			b.WriteString(resultStyle.Render(strings.Join(m.result.fields, "\n")))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc records • q quit"))
	}

	return b.String()
}

func (m *exploreModel) formatRecord(p *planner.Plan) string {
	var fields []string
	for _, f := range p.Fields {
		fields = append(fields, f.Name+": "+typeStyle.Render(f.Type.String()))
	}
	return nameStyle.Render(p.Record) + " { " + strings.Join(fields, ", ") + " }"
}
