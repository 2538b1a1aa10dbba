// Package leanbuffer compiles record descriptions into converters between Go
// records and a compact FlatBuffers table layout.
//
// A record description is an ordered list of (field name, type text) pairs.
// From it the compiler derives a plan: a fixed vtable slot per field, the
// order fields are committed while encoding, and a value codec per field.
// Plans drive two kinds of converters: Go source emitted by leangen, and a
// reflective converter built at run time.
//
// # Architecture Overview
//
//	leanbuffer/          Root package with the Adapter and Factory contracts
//	├── planner/         Type classification, slots, commit order, value codecs
//	├── table/           Bounds-checked reader and builder helpers
//	├── codec/           Reflective converters that execute a plan
//	├── gen/             Go source emission and fragment merging
//	├── schema/          Record descriptions from YAML, TOML or Go structs
//	├── errors/          Structured error types
//	└── cmd/leangen/     Command line generator
//
// # Quick Start
//
// Plan a record and convert with the reflective codec:
//
//	plan, err := planner.Assemble(planner.Record{
//	    Name: "Entity",
//	    Fields: []planner.Declaration{
//	        {Name: "id", Type: "u64"},
//	        {Name: "tags", Type: "list<string>"},
//	        {Name: "parent", Type: "option<u64>"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := codec.Compile[Entity](plan)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf := conv.Marshal(&Entity{ID: 7, Tags: []string{"a"}})
//	back := conv.Decode(buf)
//
// Or generate code ahead of time:
//
//	leangen gen -s schema.yaml -o ./model
//
// Generated records implement Adapter, and each record gets a Factory:
//
//	buf := leanbuffer.Marshal(builder, &entity)
//	back := leanbuffer.Unmarshal[model.Entity](model.EntityFactory{}, buf)
//
// # Binary Layout
//
// Field i lives at vtable offset 4 + 2*i. Required scalars equal to their
// default are omitted from the table. Optional scalars are written whenever
// present, even when equal to the default. Text and sequences are written
// out of line before the table is opened, and required ones are always
// present, even when empty. Char is stored as a 4-byte code point, and
// list<s8> is stored as raw bytes.
//
// # Decoding
//
// Decoding never fails. A missing, truncated or malformed field decodes as
// its default. Sequence decoding of char drops invalid code points, while a
// scalar char with an invalid code point keeps the default.
//
// # Thread Safety
//
// Plans and converters are immutable and safe for concurrent use. A
// flatbuffers.Builder, and codec.Encoder which owns one, must not be shared
// between goroutines.
package leanbuffer
