// Package model holds records generated from schema.yaml. It is the fixture
// the testbed compares against the reflective codec.
package model

//go:generate go run ../../cmd/leangen gen -s schema.yaml -o .
