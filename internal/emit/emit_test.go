// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package emit_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/varies/internal/emit"
	"fillmore-labs.com/varies/internal/testsource"
	"fillmore-labs.com/varies/internal/variant"
)

func expand(t *testing.T, src string) (*token.FileSet, *ast.File, *ast.FuncDecl, *variant.Table) {
	t.Helper()

	fset, f, fn, _ := testsource.ParseFile(t, src)

	classified, err := variant.Classify(variant.Statements(fn.Body, testsource.CommentMap(fset, f)))
	require.NoError(t, err)

	return fset, f, fn, variant.Build(classified)
}

func TestNew(t *testing.T) {
	t.Parallel()

	const src = `func pair[K comparable, V any](k K, v V) map[K]V {
	m := map[K]V{}
	//variant(set)
	m[k] = v
	return m
}`

	_, _, fn, table := expand(t, src)

	ns, err := New(fn, table)
	require.NoError(t, err)

	assert.Equal(t, "pair", ns.Name)
	assert.Same(t, fn.Type.TypeParams, ns.TypeParams)
	assert.Same(t, fn.Type.Params, ns.Params)
	assert.Same(t, fn.Type.Results, ns.Results)

	require.Len(t, ns.Variants, 2)
	assert.Equal(t, variant.Baseline, ns.Variants[0].Name)
	assert.Equal(t, "Default", ns.Variants[0].Method)
	assert.Len(t, ns.Variants[0].Stmts, 2)
	assert.Equal(t, "set", ns.Variants[1].Name)
	assert.Equal(t, "Set", ns.Variants[1].Method)
	assert.Len(t, ns.Variants[1].Stmts, 3)
	assert.Equal(t, "pair", fn.Name.Name, "template must not be modified")
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{
			name: "Method",
			src:  "type T struct{}\n\nfunc (T) m() {}",
			err:  ErrMethodTemplate,
		},
		{
			name: "Init",
			src:  "func init() {}",
			err:  ErrTemplateName,
		},
		{
			name: "Blank",
			src:  "func _() {}",
			err:  ErrTemplateName,
		},
		{
			name: "NoBody",
			src:  "func external()",
			err:  ErrNoBody,
		},
		{
			name: "Unexported",
			src:  "func f() {\n\t//variant(日本)\n\tprintln()\n}",
			err:  ErrVariantName,
		},
		{
			name: "Collision",
			src:  "func f() {\n\t//variant(extra)\n\tprintln()\n\t//variant(Extra)\n\tprintln()\n}",
			err:  ErrNameCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f, _, _ := testsource.ParseFile(t, tt.src)

			var fn *ast.FuncDecl
			for _, decl := range f.Decls {
				if d, ok := decl.(*ast.FuncDecl); ok {
					fn = d
				}
			}

			require.NotNil(t, fn)

			var stmts []variant.Stmt
			if fn.Body != nil {
				stmts = variant.Statements(fn.Body, testsource.CommentMap(fset, f))
			}

			classified, err := variant.Classify(stmts)
			require.NoError(t, err)

			ns, err := New(fn, variant.Build(classified))
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, ns)
		})
	}
}

func TestFileComments(t *testing.T) {
	t.Parallel()

	const src = `func check(x int) {
	if x > 0 { // positive
		// inner
		println(x)
	}
	//variant(loud)
	println("loud") // shout
}`

	fset, f, fn, table := expand(t, src)

	ns, err := New(fn, table)
	require.NoError(t, err)

	out, err := File(fset, f, "check.go", []*Namespace{ns})
	require.NoError(t, err)

	source := string(out)

	assert.Equal(t, 2, strings.Count(source, "if x > 0 { // positive\n\t\t// inner\n\t\tprintln(x)\n\t}"), "nested comments in every variant:\n%s", source)
	assert.Equal(t, 1, strings.Count(source, "\tprintln(\"loud\") // shout\n"), "tagged statement in one variant:\n%s", source)
	assert.NotContains(t, source, "variant(")
	assert.Contains(t, source, "func (check) Default(x int) {")
	assert.Contains(t, source, "func (check) Loud(x int) {")
}

func TestFileEmptyBody(t *testing.T) {
	t.Parallel()

	const src = `func noop() {}`

	fset, f, fn, table := expand(t, src)

	ns, err := New(fn, table)
	require.NoError(t, err)

	out, err := File(fset, f, "noop.go", []*Namespace{ns})
	require.NoError(t, err)

	assert.Contains(t, string(out), "// noop holds generated variants.\ntype noop struct{}\n")
	assert.Contains(t, string(out), "func (noop) Default() {")
}

func TestFileDoc(t *testing.T) {
	t.Parallel()

	const src = `// scale multiplies by a factor.
//
// The factor depends on the variant.
//
//varies:generate
//go:noinline
func scale(n int) int {
	return n
}`

	fset, f, fn, table := expand(t, src)

	ns, err := New(fn, table)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"// scale multiplies by a factor.",
		"//",
		"// The factor depends on the variant.",
	}, ns.Doc)

	out, err := File(fset, f, "scale.go", []*Namespace{ns})
	require.NoError(t, err)

	source := string(out)
	assert.Contains(t, source, "// The factor depends on the variant.\ntype scale struct{}\n")
	assert.NotContains(t, source, "varies:generate")
	assert.NotContains(t, source, "go:noinline")
}

func TestFileStrippedMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "Adjacent",
			src:  "// greet\n\t//variant(hi)\n\tprintln(\"hi\")",
			want: "\t// greet\n\tprintln(\"hi\")\n",
		},
		{
			name: "BlockMarker",
			src:  "// greet\n\t/*\n\tvariant(hi)\n\t*/\n\tprintln(\"hi\")",
			want: "\t// greet\n\tprintln(\"hi\")\n",
		},
		{
			name: "Below",
			src:  "//variant(hi)\n\t// greet\n\tprintln(\"hi\")",
			want: "\t// greet\n\tprintln(\"hi\")\n",
		},
		{
			name: "SameLine",
			src:  "// greet\n\t/*variant(hi)*/ println(\"hi\")",
			want: "\t// greet\n\tprintln(\"hi\")\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f, fn, table := expand(t, "func greet() {\n\tprintln()\n\t"+tt.src+"\n}")

			ns, err := New(fn, table)
			require.NoError(t, err)

			out, err := File(fset, f, "greet.go", []*Namespace{ns})
			require.NoError(t, err)

			source := string(out)
			assert.Contains(t, source, "func (greet) Hi() {\n\tprintln()\n"+tt.want+"}\n", "generated source:\n%s", source)
			assert.NotContains(t, source, "variant(")
		})
	}
}

func TestFileTypeParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"Grouped", "func pair[K, V comparable](k K, v V) {}", "type pair[K, V comparable] struct{}"},
		{"Pointer", "func ptr[T *int](p T) {}", "func (ptr[T]) Default(p T) {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f, fn, table := expand(t, tt.src)

			ns, err := New(fn, table)
			require.NoError(t, err)

			out, err := File(fset, f, "generic.go", []*Namespace{ns})
			require.NoError(t, err)

			assert.Contains(t, string(out), tt.want)

			// The namespace must stay a generic type, not an array type.
			gen, err := parser.ParseFile(token.NewFileSet(), "generic.go", out, parser.SkipObjectResolution)
			require.NoError(t, err)

			var spec *ast.TypeSpec
			for _, decl := range gen.Decls {
				if d, ok := decl.(*ast.GenDecl); ok && d.Tok == token.TYPE {
					spec = d.Specs[0].(*ast.TypeSpec)
				}
			}

			require.NotNil(t, spec)
			assert.NotNil(t, spec.TypeParams)
			assert.IsType(t, (*ast.StructType)(nil), spec.Type)
		})
	}
}
