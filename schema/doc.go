// Package schema discovers record descriptions.
//
// Records come from a schema file or from Go struct declarations. A YAML
// schema looks like:
//
//	package: model
//	output: leanbuffer_gen.go
//	records:
//	  - name: Entity
//	    fields:
//	      - {name: id, type: u64}
//	      - {name: tags, type: list<string>}
//	      - {name: nick, type: option<string>}
//
// The same document in TOML uses [[records]] and [[records.fields]]
// tables. Load picks the syntax from the file extension.
//
// FromStruct derives a record from a Go struct type, reading `lb` tags:
//
//	type Entity struct {
//		ID    uint64   `lb:"id"`
//		Tags  []string
//		Nick  *string
//		Grade rune `lb:",char"`
//	}
package schema
