package layout

import (
	"slices"
	"testing"

	"github.com/wippyai/leanbuffer/planner/internal/kind"
)

func TestSlot(t *testing.T) {
	tests := []struct {
		index int
		slot  uint16
	}{
		{0, 4},
		{1, 6},
		{2, 8},
		{10, 24},
		{MaxFields - 1, 65532},
	}

	for _, tt := range tests {
		if got := Slot(tt.index); got != tt.slot {
			t.Errorf("Slot(%d): got %d, want %d", tt.index, got, tt.slot)
		}
	}
}

func TestPriority(t *testing.T) {
	tests := []struct {
		typ      kind.Type
		priority int
	}{
		{kind.Of(kind.U64), 1},
		{kind.Of(kind.S64), 1},
		{kind.Of(kind.F64), 1},
		{kind.Optional(kind.Of(kind.S64)), 1},
		{kind.Sequence(kind.Of(kind.U8)), 2},
		{kind.Sequence(kind.TextType()), 2},
		{kind.TextType(), 4},
		{kind.Optional(kind.TextType()), 4},
		{kind.Of(kind.U32), 5},
		{kind.Of(kind.F32), 5},
		{kind.Of(kind.Char), 5},
		{kind.Optional(kind.Of(kind.Char)), 5},
		{kind.Of(kind.S16), 6},
		{kind.Optional(kind.Of(kind.U16)), 6},
		{kind.Of(kind.U8), 7},
		{kind.Of(kind.Bool), 7},
		{kind.Optional(kind.Of(kind.Bool)), 7},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := Priority(tt.typ); got != tt.priority {
				t.Errorf("priority: got %d, want %d", got, tt.priority)
			}
		})
	}
}

func TestCommitOrderStable(t *testing.T) {
	types := []kind.Type{
		kind.Of(kind.Bool),               // 7
		kind.Of(kind.U32),                // 5
		kind.TextType(),                  // 4
		kind.Of(kind.U64),                // 1
		kind.Of(kind.U8),                 // 7
		kind.Sequence(kind.Of(kind.S64)), // 2
		kind.Of(kind.S64),                // 1
	}

	got := CommitOrder(types)
	want := []int{3, 6, 5, 2, 1, 0, 4}
	if !slices.Equal(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestCommitOrderEmpty(t *testing.T) {
	if got := CommitOrder(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestCalculatePadding(t *testing.T) {
	types := []kind.Type{
		kind.Of(kind.U8),
		kind.Of(kind.U64),
		kind.Of(kind.U16),
		kind.Of(kind.U32),
	}

	declared := Calculate(types, []int{0, 1, 2, 3})
	sorted := Calculate(types, CommitOrder(types))

	if sorted.Padding != 0 {
		t.Errorf("sorted padding: got %d, want 0", sorted.Padding)
	}
	if declared.Padding != 9 {
		t.Errorf("declared padding: got %d, want 9", declared.Padding)
	}
	if sorted.Size != 15 {
		t.Errorf("sorted size: got %d, want 15", sorted.Size)
	}
	if sorted.Align != 8 {
		t.Errorf("align: got %d, want 8", sorted.Align)
	}
}

func TestAlignPad(t *testing.T) {
	tests := []struct {
		used, width, pad int
	}{
		{0, 8, 0},
		{1, 8, 7},
		{1, 2, 1},
		{3, 4, 1},
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := AlignPad(tt.used, tt.width); got != tt.pad {
			t.Errorf("AlignPad(%d, %d): got %d, want %d", tt.used, tt.width, got, tt.pad)
		}
	}
}
