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
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

// File renders a complete Go source file holding the given namespaces.
//
// The result is re-parsed, imports of the template file not used by the variants are removed
// and the source is formatted. source names the template file in the generated header.
func File(fset *token.FileSet, src *ast.File, source string, namespaces []*Namespace) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by varies from %s; DO NOT EDIT.\n\npackage %s\n", source, src.Name.Name) // ignore error

	writeImports(&buf, src.Imports)

	for _, ns := range namespaces {
		buf.WriteByte('\n') // ignore error

		if err := ns.Render(&buf, fset); err != nil {
			return nil, err
		}
	}

	ofset := token.NewFileSet()

	out, err := parser.ParseFile(ofset, source, buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("generated code for %s does not parse: %w", source, err)
	}

	pruneImports(ofset, out)

	var formatted bytes.Buffer
	if err := format.Node(&formatted, ofset, out); err != nil {
		return nil, fmt.Errorf("can't format generated code for %s: %w", source, err)
	}

	return formatted.Bytes(), nil
}

func writeImports(buf *bytes.Buffer, imports []*ast.ImportSpec) {
	switch len(imports) {
	case 0:
		return

	case 1:
		buf.WriteString("\nimport ") // ignore error
		writeImport(buf, imports[0])
		buf.WriteByte('\n') // ignore error

		return
	}

	buf.WriteString("\nimport (\n") // ignore error

	for _, spec := range imports {
		writeImport(buf, spec)
		buf.WriteByte('\n') // ignore error
	}

	buf.WriteString(")\n") // ignore error
}

func writeImport(buf *bytes.Buffer, spec *ast.ImportSpec) {
	if spec.Name != nil {
		buf.WriteString(spec.Name.Name) // ignore error
		buf.WriteByte(' ')              // ignore error
	}

	buf.WriteString(spec.Path.Value) // ignore error
}

// pruneImports deletes imports whose package name is not referenced.
//
// Blank and dot imports are kept, as are imports whose package name can't be derived from the path.
// A major version path like `k8s.io/api/core/v1` is kept while either `v1` or `core` is referenced.
func pruneImports(fset *token.FileSet, f *ast.File) {
	used := make(map[string]bool, len(f.Unresolved))
	for _, id := range f.Unresolved {
		used[id.Name] = true
	}

	for _, spec := range append([]*ast.ImportSpec(nil), f.Imports...) {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		names, ok := importNames(spec, importPath)
		if !ok || slices.ContainsFunc(names, func(name string) bool { return used[name] }) {
			continue
		}

		var explicit string
		if spec.Name != nil {
			explicit = spec.Name.Name
		}

		astutil.DeleteNamedImport(fset, f, explicit, importPath)
	}
}

// importNames returns the names an import may be referenced by.
//
// Without an explicit name the package name is guessed from the path. The result is false
// when no guess is possible.
func importNames(spec *ast.ImportSpec, importPath string) ([]string, bool) {
	if spec.Name != nil {
		switch name := spec.Name.Name; name {
		case "_", ".":
			return nil, false

		default:
			return []string{name}, true
		}
	}

	var names []string

	name := path.Base(importPath)
	if token.IsIdentifier(name) {
		names = append(names, name)
	}

	if isMajorVersion(name) {
		if parent := path.Base(path.Dir(importPath)); token.IsIdentifier(parent) {
			names = append(names, parent)
		}
	}

	return names, len(names) > 0
}

// isMajorVersion reports whether a path element is a module major version suffix like `v2`.
func isMajorVersion(elem string) bool {
	digits, ok := strings.CutPrefix(elem, "v")
	if !ok || digits == "" {
		return false
	}

	_, err := strconv.Atoi(digits)

	return err == nil
}
