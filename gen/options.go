package gen

import (
	"runtime"
)

// DefaultOutput is the merged file name used when none is configured.
const DefaultOutput = "leanbuffer_gen.go"

// FragmentSuffix names per-record fragments: record Entity is emitted as
// entity_lb_gen.go.
const FragmentSuffix = "_lb_gen.go"

// Options configures code generation.
type Options struct {
	// Package is the Go package name of the emitted code.
	Package string
	// Dir is the directory files are written to.
	Dir string
	// Output is the merged file name inside Dir.
	Output string
	// Split writes one fragment file per record instead of a merged file.
	Split bool
	// Concurrency bounds parallel fragment rendering. Zero means GOMAXPROCS.
	Concurrency int
}

// DefaultOptions returns options that write leanbuffer_gen.go for package
// model into the current directory.
func DefaultOptions() Options {
	return Options{
		Package:     "model",
		Dir:         ".",
		Output:      DefaultOutput,
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Package == "" {
		o.Package = d.Package
	}
	if o.Dir == "" {
		o.Dir = d.Dir
	}
	if o.Output == "" {
		o.Output = d.Output
	}
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	return o
}
