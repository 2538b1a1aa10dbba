package schema

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/planner"
)

// File is a schema file: generator options and the ordered records.
type File struct {
	Package string           `yaml:"package" toml:"package"`
	Output  string           `yaml:"output" toml:"output"`
	Records []planner.Record `yaml:"records" toml:"records"`
}

// Format selects the schema syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return 0, false
	}
}

// Load reads and parses the schema file at path.
func Load(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Path(path).
			Detail("unknown schema extension %q, want .yaml, .yml or .toml", filepath.Ext(path)).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound(errors.PhaseLoad, "schema", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
			e.Path = []string{path}
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes a schema. Unknown keys are rejected, and so is a schema
// without records.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "malformed TOML schema")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Detail("unknown key %q", undecoded[0].String()).
				Build()
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "malformed YAML schema")
		}
	}

	if len(f.Records) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindEmptyRecord).
			Detail("schema declares no records").
			Build()
	}
	return &f, nil
}
