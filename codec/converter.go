package codec

import (
	"reflect"
	"slices"
	"sync"
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/wippyai/leanbuffer/planner"
	"github.com/wippyai/leanbuffer/table"
)

const (
	// builders larger than this are not returned to the pool
	poolMaxBytes    = 1 << 20
	poolInitialSize = 256
)

var builderPool = sync.Pool{
	New: func() any {
		return flatbuffers.NewBuilder(poolInitialSize)
	},
}

func getBuilder() *flatbuffers.Builder {
	return builderPool.Get().(*flatbuffers.Builder)
}

func putBuilder(b *flatbuffers.Builder) {
	if cap(b.Bytes) > poolMaxBytes {
		return
	}
	builderPool.Put(b)
}

// Converter encodes and decodes records of type T according to a plan.
// It is immutable and safe for concurrent use.
type Converter[T any] struct {
	bd *Binding
}

// Compile binds plan to T.
func Compile[T any](plan *planner.Plan) (*Converter[T], error) {
	bd, err := Bind(plan, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Converter[T]{bd: bd}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile[T any](plan *planner.Plan) *Converter[T] {
	c, err := Compile[T](plan)
	if err != nil {
		panic(err)
	}
	return c
}

// Binding returns the underlying untyped binding.
func (c *Converter[T]) Binding() *Binding { return c.bd }

// New returns a record holding every field default: zero scalars, empty
// text, empty non-nil sequences and absent optionals.
func (c *Converter[T]) New() T {
	var v T
	c.bd.init(unsafe.Pointer(&v))
	return v
}

// Inflate decodes the table r points at.
func (c *Converter[T]) Inflate(r table.Reader) T {
	v := c.New()
	c.bd.inflate(r, unsafe.Pointer(&v))
	return v
}

// Decode decodes buf. It never fails: missing, truncated or malformed data
// decodes as field defaults, and an empty buf yields New().
func (c *Converter[T]) Decode(buf []byte) T {
	return c.Inflate(table.NewReader(buf))
}

// Flatten resets b and encodes v into it. The returned bytes alias b until
// its next Reset.
func (c *Converter[T]) Flatten(b *flatbuffers.Builder, v *T) []byte {
	n := len(c.bd.fields)
	return c.bd.flatten(b, unsafe.Pointer(v), make([]flatbuffers.UOffsetT, n), make([]bool, n))
}

// Marshal encodes v with a pooled builder and returns a copy of the bytes.
func (c *Converter[T]) Marshal(v *T) []byte {
	b := getBuilder()
	defer putBuilder(b)
	return slices.Clone(c.Flatten(b, v))
}

// Adapter returns v bound to c, for APIs that flatten records generically.
func (c *Converter[T]) Adapter(v *T) *Adapter[T] {
	return &Adapter[T]{c: c, v: v}
}

// Adapter pairs a record with its converter.
type Adapter[T any] struct {
	c *Converter[T]
	v *T
}

// Flatten encodes the record into b.
func (a *Adapter[T]) Flatten(b *flatbuffers.Builder) {
	a.c.Flatten(b, a.v)
}

// Encoder owns one growing builder and reuses it across calls. It is not
// safe for concurrent use.
type Encoder[T any] struct {
	c       *Converter[T]
	b       *flatbuffers.Builder
	handles []flatbuffers.UOffsetT
	built   []bool
}

// NewEncoder returns an encoder for c.
func NewEncoder[T any](c *Converter[T]) *Encoder[T] {
	n := len(c.bd.fields)
	return &Encoder[T]{
		c:       c,
		b:       flatbuffers.NewBuilder(poolInitialSize),
		handles: make([]flatbuffers.UOffsetT, n),
		built:   make([]bool, n),
	}
}

// Encode resets the builder and encodes v. The returned bytes are valid
// until the next call to Encode.
func (e *Encoder[T]) Encode(v *T) []byte {
	clear(e.built)
	return e.c.bd.flatten(e.b, unsafe.Pointer(v), e.handles, e.built)
}
