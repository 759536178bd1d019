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

// Package testsource provides utilities for parsing Go source code in tests.
//
// It is designed to simplify testing of the varies packages by handling common
// boilerplate code for parsing Go source fragments together with their comments.
package testsource

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"testing"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

const testpkg = "test"

// Parse parses a Go source code fragment into an AST.
// The provided source `src` is automatically wrapped in a function body `func _() { ... }`
// within a package `test`. This allows testing statement-level code fragments without
// manually constructing the surrounding package and function scaffolding.
//
// Returns:
//   - *token.FileSet: The file set containing the single source file.
//   - *ast.File: The parsed AST of the source file, including comments.
//   - *ast.FuncDecl: The function declaration wrapping the source code.
//   - inspector.Cursor: A cursor positioned at the wrapper function's Body field.
func Parse(tb testing.TB, src string) (fset *token.FileSet, f *ast.File, fn *ast.FuncDecl, body inspector.Cursor) {
	tb.Helper()

	return ParseFile(tb, wrapSource(src))
}

// ParseFile parses the declarations in `src` within a package `test` and returns the first function.
func ParseFile(tb testing.TB, src string) (fset *token.FileSet, f *ast.File, fn *ast.FuncDecl, body inspector.Cursor) {
	tb.Helper()

	const filename = "test.go"

	fset = token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, "package "+testpkg+"\n\n"+src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	fn, body = firstFuncDecl(f)
	if fn == nil {
		tb.Fatal("Can't find function")
	}

	return fset, f, fn, body
}

// CommentMap returns the comment associations of a parsed file.
func CommentMap(fset *token.FileSet, f *ast.File) ast.CommentMap {
	return ast.NewCommentMap(fset, f, f.Comments)
}

// Render prints a node in compact form, for comparisons.
func Render(tb testing.TB, fset *token.FileSet, node ast.Node) string {
	tb.Helper()

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, node); err != nil {
		tb.Fatalf("Can't render %T: %v", node, err)
	}

	return buf.String()
}

func wrapSource(src string) string {
	const (
		header = "func _() {\n"
		suffix = "\n}"
	)

	return header + src + suffix
}

func firstFuncDecl(f *ast.File) (fn *ast.FuncDecl, body inspector.Cursor) {
	root := inspector.New([]*ast.File{f}).Root()
	for c := range root.Preorder((*ast.FuncDecl)(nil)) {
		fn = c.Node().(*ast.FuncDecl)
		if fn.Body == nil {
			return fn, c
		}

		return fn, c.ChildAt(edge.FuncDecl_Body, -1)
	}

	return nil, root
}
