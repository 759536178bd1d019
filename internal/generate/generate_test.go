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

package generate_test

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"fillmore-labs.com/varies/internal/emit"
	. "fillmore-labs.com/varies/internal/generate"
	"fillmore-labs.com/varies/internal/variant"
)

func parse(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "compute.go", src, parser.ParseComments|parser.SkipObjectResolution)
	require.NoError(t, err)

	return fset, f
}

func generate(t *testing.T, src string) (*Output, error) {
	t.Helper()

	fset, f := parse(t, src)

	return File(context.Background(), fset, f, "compute.go", "")
}

const computeSource = `//go:build varies

package test

import "fmt"

// compute is a template.
//
//varies:generate
func compute(x int) int {
	y := x
	//variant(extra)
	y += 1
	// greet
	//variant(hi)
	fmt.Println("hi")
	z := 1
	return y + z
}
`

const computeVariants = `// Code generated by varies from compute.go; DO NOT EDIT.

package test

import "fmt"

// compute is a template.
type compute struct{}

func (compute) Default(x int) int {
	y := x
	z := 1
	return y + z
}

func (compute) Extra(x int) int {
	y := x
	y += 1
	z := 1
	return y + z
}

func (compute) Hi(x int) int {
	y := x
	// greet
	fmt.Println("hi")
	z := 1
	return y + z
}
`

func TestFile(t *testing.T) {
	t.Parallel()

	out, err := generate(t, computeSource)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "compute_variants.go", out.Name)
	assert.Equal(t, []string{"compute"}, out.Functions)
	assert.Empty(t, out.Ignored)
	assert.Equal(t, computeVariants, string(out.Source))

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, out.Name, out.Source, parser.PackageClauseOnly|parser.ParseComments)
	require.NoError(t, err)
	assert.True(t, ast.IsGenerated(f), "output must be marked as generated")
}

func TestFileDeterministic(t *testing.T) {
	t.Parallel()

	first, err := generate(t, computeSource)
	require.NoError(t, err)

	second, err := generate(t, computeSource)
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source)
}

func TestFileNoTemplates(t *testing.T) {
	t.Parallel()

	const src = `package test

// plain is not a template.
func plain() {
	//variant(ignored)
	println()
}
`

	out, err := generate(t, src)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestFilePrunesImports(t *testing.T) {
	t.Parallel()

	const src = `package test

import (
	"os"
	"strings"
	_ "embed"
)

func helper() string { return strings.TrimSpace(" ") }

//varies:generate
func exit(code int) {
	//variant(now)
	os.Exit(code)
}
`

	out, err := generate(t, src)
	require.NoError(t, err)

	source := string(out.Source)
	assert.Contains(t, source, `"os"`)
	assert.Contains(t, source, `_ "embed"`)
	assert.NotContains(t, source, `"strings"`)
	assert.NotContains(t, source, "helper")
}

func TestFileMajorVersionImports(t *testing.T) {
	t.Parallel()

	const src = `package test

import (
	"example.com/unused/v3"
	"gopkg.in/yaml.v3"
	"k8s.io/api/core/v1"
	"math/rand/v2"
)

var _ = unused.Value

//varies:generate
func pod(p v1.Pod) v1.Pod {
	//variant(random)
	_ = rand.IntN(2)
	return p
}
`

	out, err := generate(t, src)
	require.NoError(t, err)

	source := string(out.Source)
	assert.Contains(t, source, `"k8s.io/api/core/v1"`, "referenced by its last element")
	assert.Contains(t, source, `"math/rand/v2"`, "referenced by the element before the version")
	assert.Contains(t, source, `"gopkg.in/yaml.v3"`, "name can't be guessed")
	assert.NotContains(t, source, `"example.com/unused/v3"`)
}

func TestFileGeneric(t *testing.T) {
	t.Parallel()

	const src = `package test

import "cmp"

//varies:generate
func pick[T cmp.Ordered, U any](a, b T, u U) (T, U) {
	//variant(low)
	return min(a, b), u
	return max(a, b), u
}
`

	out, err := generate(t, src)
	require.NoError(t, err)

	source := string(out.Source)
	assert.Contains(t, source, "type pick[T cmp.Ordered, U any] struct{}")
	assert.Contains(t, source, "func (pick[T, U]) Default(a, b T, u U) (T, U) {")
	assert.Contains(t, source, "func (pick[T, U]) Low(a, b T, u U) (T, U) {")
}

func TestFileIgnoredMarker(t *testing.T) {
	t.Parallel()

	const src = `package test

//varies:generate
func bind() int {
	//variant(extra)
	x := 1
	return x
}
`

	out, err := generate(t, src)
	require.NoError(t, err)

	require.Len(t, out.Ignored, 1)
	assert.Equal(t, "//variant(extra)", out.Ignored[0].Text)
	assert.Contains(t, string(out.Source), "//variant(extra)", "markers on bindings stay in place")
}

func TestFileMisplacedMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"Nested", `package test

//varies:generate
func f(x int) {
	if x > 0 { //variant(loud)
		println("loud")
	}
	println(x)
}
`},
		{"AfterBrace", `package test

//varies:generate
func f(x int) { //variant(loud)
	println("loud")
	println(x)
}
`},
		{"EmptyBody", `package test

//varies:generate
func f(x int) {
	//variant(loud)
}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := generate(t, tt.src)
			assert.Nil(t, out)
			require.ErrorIs(t, err, variant.ErrMisplacedMarker)
		})
	}
}

func TestFileErrors(t *testing.T) {
	t.Parallel()

	const src = `package test

type T struct{}

//varies:generate
func (T) method() {
	//variant(a)
	println()
}

//varies:generate
func malformed() {
	//variant(a b)
	println()
}

//varies:generate
func collision() {
	//variant(extra)
	println(1)
	//variant(Extra)
	println(2)
}

//varies:generate
func fine() {
	println()
}
`

	out, err := generate(t, src)
	require.Error(t, err)
	assert.Nil(t, out, "no partial output")

	errs := Split(err)
	require.Len(t, errs, 3)

	assert.ErrorIs(t, errs[0], emit.ErrMethodTemplate)
	assert.ErrorIs(t, errs[1], variant.ErrMalformedMarker)
	assert.ErrorIs(t, errs[2], emit.ErrNameCollision)

	for _, err := range errs {
		var verr *variant.Error
		if assert.ErrorAs(t, err, &verr) {
			assert.True(t, verr.Pos.IsValid(), "%v has no position", err)
		}
	}
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename, suffix, want string
	}{
		{"compute.go", "", "compute_variants.go"},
		{"dir/compute.go", "_gen", "dir/compute_gen.go"},
		{"compute_test.go", "", "compute_variants_test.go"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.filename, tt.suffix); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.filename, tt.suffix, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Split(nil))
	assert.Len(t, Split(variant.ErrMalformedMarker), 1)
}

// TestRun executes the generated variants.
func TestRun(t *testing.T) {
	t.Parallel()

	const src = `package main

import "strconv"

//varies:generate
func label(n int) string {
	base := 10
	//variant(hex)
	base = 16
	//variant(binary)
	base = 2
	return strconv.FormatInt(int64(n), base)
}

//varies:generate
func compute(x int) int {
	y := x * 10
	//variant(extra)
	y += 1
	//variant(more)
	y += 2
	z := 100
	return y + z
}
`

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "label.go", src, parser.ParseComments)
	require.NoError(t, err)

	out, err := File(context.Background(), fset, f, "label.go", "")
	require.NoError(t, err)
	require.Equal(t, []string{"label", "compute"}, out.Functions)

	i := interp.New(interp.Options{})
	require.NoError(t, i.Use(stdlib.Symbols))

	_, err = i.Eval(string(out.Source))
	require.NoError(t, err, "generated source:\n%s", out.Source)

	tests := []struct {
		expr string
		want any
	}{
		{`label{}.Default(10)`, "10"},
		{`label{}.Hex(255)`, "ff"},
		{`label{}.Binary(5)`, "101"},
		{`compute{}.Default(1)`, 110},
		{`compute{}.Extra(1)`, 111},
		{`compute{}.More(1)`, 112},
	}

	for _, tt := range tests {
		v, err := i.Eval(tt.expr)
		if !assert.NoError(t, err, tt.expr) {
			continue
		}

		assert.Equal(t, tt.want, v.Interface(), tt.expr)
	}
}
