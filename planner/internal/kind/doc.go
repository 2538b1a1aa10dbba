// Package kind defines the closed set of field kinds a record may declare.
//
// A Type is one of four shapes: a fixed-size scalar, Text, a Sequence of a
// scalar or Text, or an Optional scalar or Text. Sequences never nest and
// never hold Optional elements; Optional never wraps a Sequence.
package kind
