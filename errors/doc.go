// Package errors provides structured error types for the leanbuffer compiler.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the record and field path, the Go type and schema type text
// involved, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseClassify, errors.KindUnsupportedType).
//		Record("Entity").
//		Path("t_nested").
//		TypeText("list<option<u8>>").
//		Detail("sequence elements cannot be optional").
//		Build()
//
// Or use convenience constructors for the common generation failures:
//
//	err := errors.UnsupportedType("Entity", "t_nested", "list<option<u8>>")
//	err := errors.EmissionFailure("merged source does not parse", cause)
//
// A target without a Phase matches its kind in any phase:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindUnsupportedType}) { ... }
//
// Generation-time errors are fatal. The runtime decode path never returns errors.
// All errors implement the standard error interface and support errors.Is/As.
package errors
