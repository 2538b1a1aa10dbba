package gen

import (
	"bytes"
	"cmp"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"

	"github.com/wippyai/leanbuffer/errors"
)

type importSpec struct {
	name string
	path string
}

// Merge combines generated fragments into one file of package pkg. Imports
// are deduplicated and the remaining declarations are concatenated in
// fragment order. A declaration repeated verbatim is kept once; the same
// name declared with different text is an emission_failure. The merged
// text is re-parsed and formatted, and merging merged output again returns
// it unchanged.
//
// An empty pkg takes the package name of the first fragment.
func Merge(pkg string, fragments ...[]byte) ([]byte, error) {
	fset := token.NewFileSet()

	var (
		specs []importSpec
		decls []string
		seen  = make(map[string]string)
	)
	for i, src := range fragments {
		name := fmt.Sprintf("fragment_%d.go", i)
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			return nil, errors.EmissionFailure(name+" does not parse", err)
		}
		if pkg == "" {
			pkg = f.Name.Name
		}

		for _, is := range f.Imports {
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				return nil, errors.EmissionFailure(name+" has a malformed import", err)
			}
			spec := importSpec{path: path}
			if is.Name != nil {
				spec.name = is.Name.Name
			}
			specs = append(specs, spec)
		}

		tf := fset.File(f.Pos())
		for _, decl := range f.Decls {
			if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.IMPORT {
				continue
			}
			start := decl.Pos()
			if doc := docOf(decl); doc != nil {
				start = doc.Pos()
			}
			text := string(src[tf.Offset(start):tf.Offset(decl.End())])

			key := declKey(decl)
			if key == "" {
				key = text
			}
			if prev, dup := seen[key]; dup {
				if sameTokens(prev, text) {
					continue
				}
				return nil, errors.EmissionFailure(
					fmt.Sprintf("%s conflicts with an earlier declaration of %s", name, key), nil)
			}
			seen[key] = text
			decls = append(decls, text)
		}
	}

	head, err := importHeader(fset, pkg, specs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(head)
	for _, d := range decls {
		buf.WriteString("\n")
		buf.WriteString(d)
		buf.WriteString("\n")
	}

	out, err := imports.Process("merged.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.EmissionFailure("merged source does not parse", err)
	}

	Logger().Debug("fragments merged",
		zap.String("package", pkg),
		zap.Int("fragments", len(fragments)),
		zap.Int("imports", len(specs)),
		zap.Int("decls", len(decls)))
	return out, nil
}

// importHeader renders the header comment, package clause and the union of
// specs. Specs are added in sorted order so the result does not depend on
// fragment order.
func importHeader(fset *token.FileSet, pkg string, specs []importSpec) ([]byte, error) {
	f, err := parser.ParseFile(fset, "header.go", "package "+pkg+"\n", 0)
	if err != nil {
		return nil, errors.EmissionFailure("invalid package name "+strconv.Quote(pkg), err)
	}

	slices.SortFunc(specs, func(a, b importSpec) int {
		return cmp.Or(strings.Compare(a.path, b.path), strings.Compare(a.name, b.name))
	})
	for _, s := range specs {
		astutil.AddNamedImport(fset, f, s.name, s.path)
	}

	var buf bytes.Buffer
	buf.WriteString(Header + "\n\n")
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, errors.EmissionFailure("render imports", err)
	}
	return buf.Bytes(), nil
}

// sameTokens compares a and b ignoring layout.
func sameTokens(a, b string) bool {
	return slices.Equal(strings.Fields(a), strings.Fields(b))
}

func docOf(decl ast.Decl) *ast.CommentGroup {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return d.Doc
	case *ast.GenDecl:
		return d.Doc
	}
	return nil
}

// declKey names what decl declares, or "" when it declares only blank
// identifiers.
func declKey(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil && len(d.Recv.List) > 0 {
			return "method " + recvName(d.Recv.List[0].Type) + "." + d.Name.Name
		}
		return "func " + d.Name.Name
	case *ast.GenDecl:
		var names []string
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				names = append(names, s.Name.Name)
			case *ast.ValueSpec:
				for _, n := range s.Names {
					if n.Name != "_" {
						names = append(names, n.Name)
					}
				}
			}
		}
		if len(names) == 0 {
			return ""
		}
		return d.Tok.String() + " " + strings.Join(names, ",")
	}
	return ""
}

func recvName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return recvName(t.X)
	case *ast.IndexExpr:
		return recvName(t.X)
	case *ast.IndexListExpr:
		return recvName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return "?"
}
