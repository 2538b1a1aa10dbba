// Package planner turns record descriptions into encode and decode plans.
//
// A record description is an ordered list of (name, type text) pairs. The
// planner classifies each type into a closed kind set, fixes each field's
// slot from its declaration index, orders table commits by size class, and
// selects a value codec per field. The result is a Plan, which both the
// reflective runtime in package codec and the source emitter in package gen
// consume.
//
// # Kinds
//
//	Text             Kind
//	bool, u8..u64,   Scalar
//	s8..s64, f32,
//	f64, char
//	string           Text
//	list<X>          Sequence of a scalar or string
//	option<X>        Optional scalar or string
//
// Aliases such as i64, String, Vec<X> and Option<X> are accepted. Anything
// else, including nested generics, option<list<X>> and list<option<X>>, is an
// unsupported_type error and aborts the record.
//
// # Slots and commit order
//
// Field i lives at vtable offset 4 + 2*i regardless of its kind. During
// encode, out-of-line objects (text and sequences) are built first, then the
// table is opened and fields are committed widest first:
//
//	Priority  Fields
//	1         8-byte scalars and their optional forms
//	2         sequences
//	4         text, optional text
//	5         4-byte scalars, char
//	6         2-byte scalars
//	7         1-byte scalars, bool
//
// Ties keep declaration order.
//
// # Codecs
//
// Required scalars are omitted from the table when equal to their default.
// Optional scalars are written whenever present. Required text and sequences
// are always written, even when empty. Decoding never fails; anything missing
// or malformed decodes as the field default.
//
// # Thread Safety
//
// Assemble is a pure function. Compiler caches plans in a sync.Map and is
// safe for concurrent use; CompileAll plans records in parallel.
package planner
