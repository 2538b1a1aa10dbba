package codec

import (
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/wippyai/leanbuffer/table"
)

// ops is the compiled encode and decode logic for one bound field.
// p points at the field inside the record.
type ops struct {
	// build creates the out-of-line object; false when nothing was built.
	build func(b *flatbuffers.Builder, p unsafe.Pointer) (flatbuffers.UOffsetT, bool)
	// commit writes the field into the open table.
	commit func(b *flatbuffers.Builder, p unsafe.Pointer, off flatbuffers.UOffsetT, built bool)
	// decode reads the field; the record already holds defaults.
	decode func(r table.Reader, p unsafe.Pointer)
	// init stores the field default into a zeroed record.
	init func(p unsafe.Pointer)
}

func scalarOps[T table.Scalar](index int, slot uint16) ops {
	var zero T
	return ops{
		commit: func(b *flatbuffers.Builder, p unsafe.Pointer, _ flatbuffers.UOffsetT, _ bool) {
			table.PrependSlot(b, index, *(*T)(p), zero)
		},
		decode: func(r table.Reader, p unsafe.Pointer) {
			*(*T)(p) = table.Get(r, slot, *(*T)(p))
		},
	}
}

func optionalOps[T table.Scalar](index int, slot uint16) ops {
	return ops{
		commit: func(b *flatbuffers.Builder, p unsafe.Pointer, _ flatbuffers.UOffsetT, _ bool) {
			if v := *(**T)(p); v != nil {
				table.PrependSlotAlways(b, index, *v)
			}
		},
		decode: func(r table.Reader, p unsafe.Pointer) {
			if v, ok := table.Lookup[T](r, slot); ok {
				*(**T)(p) = &v
			}
		},
	}
}

func charOps(index int, slot uint16) ops {
	return ops{
		commit: func(b *flatbuffers.Builder, p unsafe.Pointer, _ flatbuffers.UOffsetT, _ bool) {
			table.PrependCharSlot(b, index, *(*rune)(p), 0)
		},
		decode: func(r table.Reader, p unsafe.Pointer) {
			*(*rune)(p) = r.Char(slot, *(*rune)(p))
		},
	}
}

func optionalCharOps(index int, slot uint16) ops {
	return ops{
		commit: func(b *flatbuffers.Builder, p unsafe.Pointer, _ flatbuffers.UOffsetT, _ bool) {
			if v := *(**rune)(p); v != nil {
				table.PrependCharSlotAlways(b, index, *v)
			}
		},
		decode: func(r table.Reader, p unsafe.Pointer) {
			if c, ok := r.LookupChar(slot); ok {
				*(**rune)(p) = &c
			}
		},
	}
}

func commitOffset(index int) func(*flatbuffers.Builder, unsafe.Pointer, flatbuffers.UOffsetT, bool) {
	return func(b *flatbuffers.Builder, _ unsafe.Pointer, off flatbuffers.UOffsetT, built bool) {
		if built {
			table.PrependOffsetSlot(b, index, off)
		}
	}
}

func textOps(index int, slot uint16) ops {
	return ops{
		build: func(b *flatbuffers.Builder, p unsafe.Pointer) (flatbuffers.UOffsetT, bool) {
			return b.CreateString(*(*string)(p)), true
		},
		commit: commitOffset(index),
		decode: func(r table.Reader, p unsafe.Pointer) {
			if s, ok := r.Text(slot); ok {
				*(*string)(p) = s
			}
		},
	}
}

func optionalTextOps(index int, slot uint16) ops {
	return ops{
		build: func(b *flatbuffers.Builder, p unsafe.Pointer) (flatbuffers.UOffsetT, bool) {
			v := *(**string)(p)
			if v == nil {
				return 0, false
			}
			return b.CreateString(*v), true
		},
		commit: commitOffset(index),
		decode: func(r table.Reader, p unsafe.Pointer) {
			if s, ok := r.Text(slot); ok {
				*(**string)(p) = &s
			}
		},
	}
}

// sliceOps covers every sequence kind; create and read differ per element.
func sliceOps[T any](
	index int,
	slot uint16,
	create func(*flatbuffers.Builder, []T) flatbuffers.UOffsetT,
	read func(table.Reader, uint16) ([]T, bool),
) ops {
	return ops{
		build: func(b *flatbuffers.Builder, p unsafe.Pointer) (flatbuffers.UOffsetT, bool) {
			return create(b, *(*[]T)(p)), true
		},
		commit: commitOffset(index),
		decode: func(r table.Reader, p unsafe.Pointer) {
			if v, ok := read(r, slot); ok {
				*(*[]T)(p) = v
			}
		},
		init: func(p unsafe.Pointer) {
			*(*[]T)(p) = []T{}
		},
	}
}

func vectorOps[T table.Scalar](index int, slot uint16) ops {
	return sliceOps(index, slot, table.CreateVector[T], table.Vector[T])
}
