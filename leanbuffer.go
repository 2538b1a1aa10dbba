package leanbuffer

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/wippyai/leanbuffer/table"
)

// Adapter is implemented by records that can write themselves into a table.
// Flatten resets b, builds the record and finishes the buffer.
type Adapter interface {
	Flatten(b *flatbuffers.Builder)
}

// Factory creates records of type T.
type Factory[T any] interface {
	// New returns a record holding every field default.
	New() T
	// Inflate decodes the table r points at. It never fails.
	Inflate(r table.Reader) T
}

// Marshal flattens a into b and returns a copy of the finished bytes.
func Marshal(b *flatbuffers.Builder, a Adapter) []byte {
	a.Flatten(b)
	return append([]byte(nil), b.FinishedBytes()...)
}

// Unmarshal decodes buf with f. A buffer that is empty or malformed decodes
// as far as it can; missing fields keep their defaults.
func Unmarshal[T any](f Factory[T], buf []byte) T {
	return f.Inflate(table.NewReader(buf))
}
