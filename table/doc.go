// Package table is the runtime support shared by generated converters and
// the reflective codec.
//
// Buffers use the FlatBuffers table layout: a root offset, a table holding a
// signed offset to its vtable, and a vtable of 2-byte field offsets where
// field i lives at vtable offset 4 + 2*i. A zero entry, or an entry past the
// end of a short vtable, means the field is absent.
//
// # Reading
//
// Reader never panics and never returns errors. Every access is bounds
// checked against the buffer; anything missing, truncated or malformed is
// reported as absent so callers fall back to defaults. A zero-length buffer
// yields a Reader on which every field is absent. Strings and vectors are
// copied out of the buffer, so decoded values never alias it.
//
// # Building
//
// The helpers wrap a *flatbuffers.Builder. Out-of-line objects (strings and
// vectors) must be created before StartObject; slots are then committed with
// PrependSlot, which omits values equal to the default, or PrependSlotAlways,
// which does not.
//
// # Thread Safety
//
// A Reader is a value over an immutable buffer and is safe for concurrent
// use. Builders are not.
package table
