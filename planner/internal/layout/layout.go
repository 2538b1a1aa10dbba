package layout

import (
	"slices"

	"github.com/wippyai/leanbuffer/planner/internal/kind"
)

const (
	// MetadataSize is the vtable header: vtable length and object length.
	MetadataSize = 4
	// SlotSize is the width of one vtable entry.
	SlotSize = 2
	// MaxFields is the largest field count whose last slot fits a 16-bit offset.
	MaxFields = (0xFFFF - MetadataSize) / SlotSize
)

// Slot returns the vtable offset of the field declared at index i.
func Slot(i int) uint16 {
	return uint16(MetadataSize + SlotSize*i)
}

// Priority returns the commit priority of t. Lower commits first.
func Priority(t kind.Type) int {
	switch t.Shape {
	case kind.ShapeSequence:
		return 2
	case kind.ShapeText:
		return 4
	case kind.ShapeOptional:
		if t.Text {
			return 4
		}
		return scalarPriority(t.Scalar)
	default:
		return scalarPriority(t.Scalar)
	}
}

func scalarPriority(s kind.Scalar) int {
	switch s.Size() {
	case 8:
		return 1
	case 4:
		return 5
	case 2:
		return 6
	default:
		return 7
	}
}

// CommitOrder returns field indexes stable-sorted by priority.
func CommitOrder(types []kind.Type) []int {
	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return Priority(types[a]) - Priority(types[b])
	})
	return order
}

// Info describes the inline region a commit order produces.
type Info struct {
	Size    int // inline bytes including padding, excluding the vtable offset
	Padding int // bytes inserted for alignment
	Align   int // widest inline value
}

// Calculate simulates prepending the fields of types in order, starting from
// an 8-aligned buffer position.
func Calculate(types []kind.Type, order []int) Info {
	info := Info{Align: 1}
	used := 0
	for _, i := range order {
		w := types[i].Width()
		if w == 0 {
			continue
		}
		pad := AlignPad(used, w)
		info.Padding += pad
		used += pad + w
		if w > info.Align {
			info.Align = w
		}
	}
	info.Size = used
	return info
}

// AlignPad returns the padding needed before prepending a value of the given
// width when used bytes are already written.
func AlignPad(used, width int) int {
	return (-used) & (width - 1)
}
