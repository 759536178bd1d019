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

package emit

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"

	"fillmore-labs.com/varies/internal/variant"
)

// Fatal emission errors.
var (
	// ErrMethodTemplate is returned for templates with a receiver.
	ErrMethodTemplate = errors.New("template is a method")

	// ErrTemplateName is returned for templates whose name can't name a type.
	ErrTemplateName = errors.New("invalid template name")

	// ErrNoBody is returned for templates without a body.
	ErrNoBody = errors.New("template has no body")

	// ErrVariantName is returned for variants whose method name can't be exported.
	ErrVariantName = errors.New("variant name can't be exported")

	// ErrNameCollision is returned when two variants map to the same method name.
	ErrNameCollision = errors.New("variant name collision")
)

// Namespace is the grouping type for the variants of one template.
//
// It is named after the template and carries its type parameters.
// Every variant is an exported method with the template's parameters and results.
type Namespace struct {
	Name       string
	Doc        []string // Doc comment lines of the template without directives
	TypeParams *ast.FieldList
	Params     *ast.FieldList
	Results    *ast.FieldList
	Variants   []Variant
}

// Variant is one method of a [Namespace].
type Variant struct {
	Name   string         // Marker name, [variant.Baseline] for the baseline
	Method string         // Exported method name
	Stmts  []variant.Stmt // Body statements in order
}

// New creates the [Namespace] for a template from its variant table.
func New(fn *ast.FuncDecl, table *variant.Table) (*Namespace, error) {
	name := fn.Name.Name

	switch {
	case fn.Recv != nil:
		return nil, &variant.Error{Pos: fn.Name.Pos(), Text: name, Err: ErrMethodTemplate}

	case name == "init" || name == "_":
		return nil, &variant.Error{Pos: fn.Name.Pos(), Text: name, Err: ErrTemplateName}

	case fn.Body == nil:
		return nil, &variant.Error{Pos: fn.Name.Pos(), Text: name, Err: ErrNoBody}
	}

	ns := &Namespace{
		Name:       name,
		Doc:        docLines(fn.Doc),
		TypeParams: fn.Type.TypeParams,
		Params:     fn.Type.Params,
		Results:    fn.Type.Results,
		Variants:   make([]Variant, 0, table.Len()),
	}

	methods := make(map[string]struct{}, table.Len())

	for _, v := range table.Names() {
		method := variant.MethodName(v)

		if !token.IsExported(method) {
			return nil, &variant.Error{Pos: table.Origin(v), Text: v, Err: ErrVariantName}
		}

		if _, ok := methods[method]; ok {
			return nil, &variant.Error{Pos: table.Origin(v), Text: v, Err: ErrNameCollision}
		}

		methods[method] = struct{}{}

		ns.Variants = append(ns.Variants, Variant{Name: v, Method: method, Stmts: table.Statements(v)})
	}

	return ns, nil
}

// docLines returns the comment lines of a doc comment, without directives
// and without the empty lines separating them from the text.
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var lines []string

	for _, c := range doc.List {
		if isDirective(c.Text) {
			continue
		}

		lines = append(lines, c.Text)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "//" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// isDirective reports whether a comment is a directive like `//go:generate` or `//varies:generate`.
func isDirective(text string) bool {
	body, ok := strings.CutPrefix(text, "//")
	if !ok || body == "" || body[0] == ' ' || body[0] == '\t' {
		return false
	}

	prefix, _, found := strings.Cut(body, ":")

	return found && prefix != "" && !strings.ContainsAny(prefix, " \t")
}

// receiver refers to the namespace type, instantiated with its own type parameters.
func (n *Namespace) receiver() *ast.FieldList {
	var typ ast.Expr = ast.NewIdent(n.Name)

	var indices []ast.Expr

	if n.TypeParams != nil {
		for _, field := range n.TypeParams.List {
			for _, id := range field.Names {
				indices = append(indices, ast.NewIdent(id.Name))
			}
		}
	}

	switch len(indices) {
	case 0:

	case 1:
		typ = &ast.IndexExpr{X: typ, Index: indices[0]}

	default:
		typ = &ast.IndexListExpr{X: typ, Indices: indices}
	}

	return &ast.FieldList{List: []*ast.Field{{Type: typ}}}
}

// signature is the method declaration of a variant without body.
// The template signature is reused, only the name is replaced.
func (n *Namespace) signature(v Variant) *ast.FuncDecl {
	return &ast.FuncDecl{
		Recv: n.receiver(),
		Name: ast.NewIdent(v.Method),
		Type: &ast.FuncType{Params: n.Params, Results: n.Results},
	}
}
