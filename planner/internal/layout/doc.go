// Package layout computes where fields live in a table and in which order
// they are committed.
//
// # Slots
//
// A table's vtable starts with two 2-byte entries (vtable size, object size),
// followed by one 2-byte entry per field. Field i is therefore addressed by
// vtable offset 4 + 2*i. Slots follow declaration order and are never reused.
//
// # Commit order
//
// Values are prepended into a downward-growing buffer. Committing wider
// values first keeps the inline region free of alignment padding. Fields are
// stable-sorted by a size-class priority:
//
//	priority  kinds
//	1         8-byte scalars and their optional forms
//	2         sequences
//	4         text and optional text
//	5         4-byte scalars, char and their optional forms
//	6         2-byte scalars and their optional forms
//	7         1-byte scalars, bool and their optional forms
//
// Commit order never changes slots; readers only see slot offsets.
//
// This package is internal to the planner.
package layout
