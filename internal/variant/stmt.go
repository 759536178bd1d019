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

package variant

import (
	"cmp"
	"go/ast"
	"go/token"
	"slices"
)

// Stmt is a statement of a template body together with its comments.
//
// The syntax node is shared and never modified; comment lists are replaced, not edited.
type Stmt struct {
	Node ast.Stmt

	// Annotations are the comment groups attached to Node itself.
	Annotations []*ast.CommentGroup

	// Inner are the comment groups attached to nodes nested inside Node.
	Inner []*ast.CommentGroup

	// Stripped is the marker removed from Annotations, if any.
	Stripped *ast.Comment
}

// Statements splits a function body into [Stmt] values, using the comment associations of cmap.
func Statements(body *ast.BlockStmt, cmap ast.CommentMap) []Stmt {
	if body == nil {
		return nil
	}

	stmts := make([]Stmt, 0, len(body.List))

	for _, node := range body.List {
		own := cmap[node]

		var inner []*ast.CommentGroup

		for _, g := range cmap.Filter(node).Comments() {
			if !slices.Contains(own, g) {
				inner = append(inner, g)
			}
		}

		stmts = append(stmts, Stmt{Node: node, Annotations: slices.Clone(own), Inner: inner})
	}

	return stmts
}

// Pos returns the position of the statement node.
func (s Stmt) Pos() token.Pos {
	if s.Node == nil {
		return token.NoPos
	}

	return s.Node.Pos()
}

// Comments returns all comment groups of the statement in source order.
func (s Stmt) Comments() []*ast.CommentGroup {
	all := slices.Concat(s.Annotations, s.Inner)
	slices.SortFunc(all, func(a, b *ast.CommentGroup) int { return cmp.Compare(a.Pos(), b.Pos()) })

	return all
}

// Shape classifies statements by whether they can carry a variant marker.
type Shape uint8

//go:generate go tool stringer -type Shape -trimprefix Shape
const (
	// ShapeUnrecognized is a statement outside the known set, a fatal classification error.
	ShapeUnrecognized Shape = iota

	// ShapeAnnotated statements expose an annotation list.
	ShapeAnnotated

	// ShapeBinding statements declare names and are always untagged.
	ShapeBinding
)

// ShapeOf reports whether a statement exposes an annotation list.
func ShapeOf(stmt ast.Stmt) Shape {
	switch n := stmt.(type) {
	case *ast.DeclStmt:
		return ShapeBinding

	case *ast.AssignStmt:
		if n.Tok == token.DEFINE {
			return ShapeBinding
		}

		return ShapeAnnotated

	case *ast.ExprStmt, *ast.IncDecStmt, *ast.SendStmt,
		*ast.GoStmt, *ast.DeferStmt, *ast.ReturnStmt, *ast.BranchStmt,
		*ast.BlockStmt, *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt,
		*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt,
		*ast.LabeledStmt, *ast.EmptyStmt:
		return ShapeAnnotated

	default: // *ast.BadStmt, clauses outside their switch or select
		return ShapeUnrecognized
	}
}
