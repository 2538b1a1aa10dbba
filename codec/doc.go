// Package codec executes encode and decode plans against Go structs.
//
// Bind matches each plan field to a struct field and compiles a small set of
// closures per field, selected by the field's codec strategies. Fields are
// addressed through their struct offsets, so a bound plan encodes and decodes
// without per-call reflection.
//
// # Go representation
//
//	Kind              Go type
//	scalar            same-width numeric type, bool, rune for char
//	string            string
//	list<u8>          []byte
//	list<X>           []X
//	option<X>         *X
//
// Named types with the same underlying kind are accepted.
//
// # Key Types
//
//	Binding       - untyped plan bound to a reflect.Type
//	Converter[T]  - typed binding; implements leanbuffer.Factory[T]
//	Encoder[T]    - converter plus one reusable builder
//
// # Thread Safety
//
// Binding and Converter are immutable and safe for concurrent use.
// Converter.Marshal draws builders from a sync.Pool. Encoder reuses one
// builder and must not be used from more than one goroutine.
package codec
