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

package generate

import (
	"context"
	"errors"
	"go/ast"
	"go/token"
	"iter"
	"path/filepath"
	"runtime/trace"
	"slices"
	"strings"

	"fillmore-labs.com/varies/internal/emit"
	"fillmore-labs.com/varies/internal/variant"
)

// Directive marks a function declaration as a variant template.
const Directive = "//varies:generate"

// DefaultSuffix is appended to a template file's base name to name its output file.
const DefaultSuffix = "_variants"

// IsTemplate reports whether the doc comment of a function declaration carries the [Directive].
func IsTemplate(fn *ast.FuncDecl) bool {
	return DirectiveOf(fn) != nil
}

// DirectiveOf returns the [Directive] comment of a template, or nil.
func DirectiveOf(fn *ast.FuncDecl) *ast.Comment {
	if fn.Doc == nil {
		return nil
	}

	for _, c := range fn.Doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return c
		}
	}

	return nil
}

// Templates yields all template function declarations of a file.
func Templates(f *ast.File) iter.Seq[*ast.FuncDecl] {
	return func(yield func(*ast.FuncDecl) bool) {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || !IsTemplate(fn) {
				continue
			}

			if !yield(fn) {
				return
			}
		}
	}
}

// Expansion is the expanded form of a single template.
type Expansion struct {
	Namespace *emit.Namespace

	// Ignored are markers on statements that can't be tagged.
	Ignored []*ast.Comment
}

// Function runs the classify, build and emit pipeline for one template.
func Function(ctx context.Context, cmap ast.CommentMap, fn *ast.FuncDecl) (*Expansion, error) {
	var (
		classified []variant.Classified
		err        error
	)

	trace.WithRegion(ctx, "Classify", func() {
		stmts := variant.Statements(fn.Body, cmap)

		if err = variant.Stray(fn.Body, cmap, stmts); err != nil {
			return
		}

		classified, err = variant.Classify(stmts)
	})

	if err != nil {
		return nil, err
	}

	var table *variant.Table

	trace.WithRegion(ctx, "Build", func() {
		table = variant.Build(classified)
	})

	ns, err := emit.New(fn, table)
	if err != nil {
		return nil, err
	}

	var ignored []*ast.Comment

	for _, c := range classified {
		if c.Ignored != nil {
			ignored = append(ignored, c.Ignored)
		}
	}

	return &Expansion{Namespace: ns, Ignored: ignored}, nil
}

// Output is the generated file for one template file.
type Output struct {
	Template  string   // Template file name
	Name      string   // Output file name, in the template's directory
	Source    []byte   // Formatted Go source
	Functions []string // Names of the expanded templates

	// Ignored are markers on statements that can't be tagged.
	Ignored []*ast.Comment
}

// File expands all templates of a parsed file.
//
// It returns nil without error when the file has no templates. All templates are processed;
// when any of them fails, the joined errors are returned and no output is produced.
func File(ctx context.Context, fset *token.FileSet, f *ast.File, filename, suffix string) (*Output, error) {
	defer trace.StartRegion(ctx, "File").End()

	var (
		cmap       ast.CommentMap
		namespaces []*emit.Namespace
		out        Output
		errs       []error
	)

	for fn := range Templates(f) {
		if cmap == nil {
			cmap = ast.NewCommentMap(fset, f, f.Comments)
		}

		exp, err := Function(ctx, cmap, fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		namespaces = append(namespaces, exp.Namespace)
		out.Functions = append(out.Functions, fn.Name.Name)
		out.Ignored = append(out.Ignored, exp.Ignored...)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if len(namespaces) == 0 {
		return nil, nil
	}

	source, err := emit.File(fset, f, filepath.Base(filename), namespaces)
	if err != nil {
		return nil, err
	}

	out.Template = filename
	out.Name = OutputName(filename, suffix)
	out.Source = source

	return &out, nil
}

// OutputName returns the output file name for a template file.
//
// The suffix is inserted before `.go`, test files stay test files.
func OutputName(filename, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	base := strings.TrimSuffix(filename, ".go")

	if test, ok := strings.CutSuffix(base, "_test"); ok {
		return test + suffix + "_test.go"
	}

	return base + suffix + ".go"
}

// Split returns the individual errors of a joined error.
func Split(err error) []error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return slices.Clone(joined.Unwrap())
	}

	return []error{err}
}
