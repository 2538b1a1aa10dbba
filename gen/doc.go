// Package gen emits Go source for record plans.
//
// For each plan, Fragment renders a self-contained file holding the record
// struct, a New<Record> constructor with field defaults, a Flatten method
// implementing leanbuffer.Adapter and a <Record>Factory implementing
// leanbuffer.Factory. The emitted code calls package table directly and
// uses no reflection.
//
// Merge combines fragments into one file: imports are deduplicated,
// declarations concatenated, and the result re-parsed and formatted.
// Merging is idempotent. Any parse failure is an emission_failure and
// nothing is written.
//
//	plans, _ := planner.NewCompiler().CompileAll(records)
//	frags, _ := gen.Render(ctx, plans, opts)
//	src, _ := gen.Merge("model", frags...)
//	_ = gen.WriteFile("model/leanbuffer_gen.go", src)
//
// Generate runs the whole pipeline.
package gen
