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
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"

	"fillmore-labs.com/varies/internal/variant"
)

// Render writes the namespace type declaration followed by one method per variant.
func (n *Namespace) Render(buf *bytes.Buffer, fset *token.FileSet) error {
	if len(n.Doc) == 0 {
		fmt.Fprintf(buf, "// %s holds generated variants.\n", n.Name) // ignore error
	}

	for _, line := range n.Doc {
		buf.WriteString(line) // ignore error
		buf.WriteByte('\n')   // ignore error
	}

	buf.WriteString("type ") // ignore error
	buf.WriteString(n.Name)  // ignore error

	if err := n.renderTypeParams(buf, fset); err != nil {
		return fmt.Errorf("can't render type %s: %w", n.Name, err)
	}

	buf.WriteString(" struct{}\n") // ignore error

	for _, v := range n.Variants {
		buf.WriteByte('\n') // ignore error

		if err := n.renderMethod(buf, fset, v); err != nil {
			return fmt.Errorf("can't render variant %s of %s: %w", v.Name, n.Name, err)
		}
	}

	return nil
}

// renderTypeParams writes the type parameter list of the namespace type, `[K comparable, V any]`.
func (n *Namespace) renderTypeParams(buf *bytes.Buffer, fset *token.FileSet) error {
	if n.TypeParams == nil || len(n.TypeParams.List) == 0 {
		return nil
	}

	buf.WriteByte('[') // ignore error

	for i, field := range n.TypeParams.List {
		if i > 0 {
			buf.WriteString(", ") // ignore error
		}

		for j, id := range field.Names {
			if j > 0 {
				buf.WriteString(", ") // ignore error
			}

			buf.WriteString(id.Name) // ignore error
		}

		buf.WriteByte(' ') // ignore error

		if err := printer.Fprint(buf, fset, field.Type); err != nil {
			return err
		}
	}

	// `type T[P *C] struct{}` would parse as an array type
	if list := n.TypeParams.List; len(list) == 1 && len(list[0].Names) == 1 {
		switch list[0].Type.(type) {
		case *ast.StarExpr, *ast.BinaryExpr, *ast.ParenExpr:
			buf.WriteByte(',') // ignore error
		}
	}

	buf.WriteByte(']') // ignore error

	return nil
}

func (n *Namespace) renderMethod(buf *bytes.Buffer, fset *token.FileSet, v Variant) error {
	if err := printer.Fprint(buf, fset, n.signature(v)); err != nil {
		return err
	}

	buf.WriteString(" {\n") // ignore error

	for _, stmt := range v.Stmts {
		if err := renderStmt(buf, fset, stmt); err != nil {
			return err
		}

		buf.WriteByte('\n') // ignore error
	}

	buf.WriteString("}\n") // ignore error

	return nil
}

// renderStmt prints a statement with its comments.
//
// The printer only places comments within the printed node's range, so the statement is
// printed inside a block spanning all its comments and the braces are removed afterwards.
func renderStmt(buf *bytes.Buffer, fset *token.FileSet, stmt variant.Stmt) error {
	comments := closeGap(fset, stmt)

	lbrace, rbrace := stmt.Node.Pos(), stmt.Node.End()
	if len(comments) > 0 {
		lbrace = min(lbrace, comments[0].Pos())
		rbrace = max(rbrace, comments[len(comments)-1].End())
	}

	block := &ast.BlockStmt{Lbrace: lbrace, List: []ast.Stmt{stmt.Node}, Rbrace: rbrace}

	var out bytes.Buffer
	if err := printer.Fprint(&out, fset, &printer.CommentedNode{Node: block, Comments: comments}); err != nil {
		return err
	}

	text := bytes.TrimPrefix(out.Bytes(), []byte("{"))
	text = bytes.TrimSuffix(text, []byte("}"))

	buf.Write(bytes.TrimSpace(text)) // ignore error

	return nil
}

// closeGap returns the comments of a statement with the lines of a stripped marker removed.
//
// Comments above a marker that occupied lines of its own are moved down by the marker's
// line count, so they stay adjacent to the statement. The syntax tree is not modified.
func closeGap(fset *token.FileSet, stmt variant.Stmt) []*ast.CommentGroup {
	comments := stmt.Comments()

	marker := stmt.Stripped
	if marker == nil || marker.Pos() > stmt.Node.Pos() {
		return comments
	}

	file := fset.File(marker.Pos())
	if file == nil {
		return comments
	}

	first, last := file.Line(marker.Pos()), file.Line(marker.End())

	within := func(pos token.Pos) bool {
		line := file.Line(pos)

		return first <= line && line <= last
	}

	if within(stmt.Node.Pos()) || within(stmt.Node.End()) {
		return comments
	}

	for _, g := range comments {
		for _, c := range g.List {
			if within(c.Pos()) || within(c.End()) {
				return comments // marker shares its lines
			}
		}
	}

	shift := last - first + 1

	moved := make([]*ast.CommentGroup, 0, len(comments))

	for _, g := range comments {
		if g.Pos() > marker.Pos() {
			moved = append(moved, g)

			continue
		}

		list := make([]*ast.Comment, 0, len(g.List))
		for _, c := range g.List {
			if c.Pos() > marker.Pos() {
				list = append(list, c)

				continue
			}

			pos := file.LineStart(file.Line(c.Pos()) + shift)
			list = append(list, &ast.Comment{Slash: pos, Text: c.Text})
		}

		moved = append(moved, &ast.CommentGroup{List: list})
	}

	return moved
}
