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
	"fmt"
	"go/ast"
	"slices"
)

// Classified is a statement with its variant marker removed.
type Classified struct {
	// Stmt is the cleaned statement, its annotations without the variant marker.
	Stmt Stmt

	// Variant is the marker name, empty for untagged statements.
	Variant string

	// Marker is the removed marker comment, nil for untagged statements.
	Marker *ast.Comment

	// Ignored is a marker found on a statement that can't be tagged.
	Ignored *ast.Comment
}

// Tagged reports whether the statement belongs to a single variant.
func (c Classified) Tagged() bool { return c.Variant != "" }

// Classify classifies a statement sequence in order.
// The first fatal error aborts classification.
func Classify(stmts []Stmt) ([]Classified, error) {
	classified := make([]Classified, 0, len(stmts))

	for _, stmt := range stmts {
		c, err := ClassifyStmt(stmt)
		if err != nil {
			return nil, err
		}

		classified = append(classified, c)
	}

	return classified, nil
}

// ClassifyStmt determines the variant of a single statement and strips its marker.
//
// Markers on comments nested inside the statement are a fatal [ErrMisplacedMarker].
func ClassifyStmt(stmt Stmt) (Classified, error) {
	if c := findMarker(stmt.Inner); c != nil {
		return Classified{}, &Error{Pos: c.Slash, Text: c.Text, Err: ErrMisplacedMarker}
	}

	switch ShapeOf(stmt.Node) {
	case ShapeAnnotated:
		return classifyAnnotated(stmt)

	case ShapeBinding:
		return Classified{Stmt: stmt, Ignored: findMarker(stmt.Annotations)}, nil

	default:
		return Classified{}, &Error{Pos: stmt.Pos(), Text: fmt.Sprintf("%T", stmt.Node), Err: ErrUnrecognizedStatement}
	}
}

func classifyAnnotated(stmt Stmt) (Classified, error) {
	var (
		marker *ast.Comment
		name   string
	)

	for _, g := range stmt.Annotations {
		for _, c := range g.List {
			n, isMarker, err := ParseMarker(c.Text)
			switch {
			case !isMarker:
				continue

			case err != nil:
				return Classified{}, &Error{Pos: c.Slash, Text: c.Text, Err: err}

			case marker != nil:
				return Classified{}, &Error{Pos: c.Slash, Text: c.Text, Err: ErrMultipleMarkers}
			}

			marker, name = c, n
		}
	}

	if marker == nil {
		return Classified{Stmt: stmt}, nil
	}

	cleaned := stmt
	cleaned.Annotations = stripComment(stmt.Annotations, marker)
	cleaned.Stripped = marker

	return Classified{Stmt: cleaned, Variant: name, Marker: marker}, nil
}

// stripComment returns a new annotation list without the given comment.
// Groups left empty are dropped.
func stripComment(groups []*ast.CommentGroup, comment *ast.Comment) []*ast.CommentGroup {
	stripped := make([]*ast.CommentGroup, 0, len(groups))

	for _, g := range groups {
		if !slices.Contains(g.List, comment) {
			stripped = append(stripped, g)
			continue
		}

		list := slices.DeleteFunc(slices.Clone(g.List), func(c *ast.Comment) bool { return c == comment })
		if len(list) > 0 {
			stripped = append(stripped, &ast.CommentGroup{List: list})
		}
	}

	return stripped
}

// Stray checks the comments inside a body that belong to none of its statements.
// A marker there, like one after the opening brace or before the closing one, is a fatal
// [ErrMisplacedMarker].
func Stray(body *ast.BlockStmt, cmap ast.CommentMap, stmts []Stmt) error {
	if body == nil {
		return nil
	}

	owned := make(map[*ast.CommentGroup]struct{})

	for _, stmt := range stmts {
		for _, g := range stmt.Annotations {
			owned[g] = struct{}{}
		}

		for _, g := range stmt.Inner {
			owned[g] = struct{}{}
		}
	}

	for _, g := range cmap.Comments() {
		if g.Pos() < body.Lbrace || g.End() > body.Rbrace {
			continue
		}

		if _, ok := owned[g]; ok {
			continue
		}

		if c := findMarker([]*ast.CommentGroup{g}); c != nil {
			return &Error{Pos: c.Slash, Text: c.Text, Err: ErrMisplacedMarker}
		}
	}

	return nil
}

// findMarker returns the first comment that parses as a marker, malformed ones included.
func findMarker(groups []*ast.CommentGroup) *ast.Comment {
	for _, g := range groups {
		for _, c := range g.List {
			if _, isMarker, _ := ParseMarker(c.Text); isMarker {
				return c
			}
		}
	}

	return nil
}
