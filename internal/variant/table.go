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
	"go/token"
	"slices"
)

// Table maps variant names to their ordered statement lists.
//
// Every entry holds all untagged statements added so far, in order, interleaved
// with the statements tagged for that entry.
type Table struct {
	names   []string // Creation order, [Baseline] first
	stmts   map[string][]Stmt
	origins map[string]token.Pos
}

// NewTable creates a [Table] with an empty [Baseline] entry.
func NewTable() *Table {
	return &Table{
		names:   []string{Baseline},
		stmts:   map[string][]Stmt{Baseline: nil},
		origins: make(map[string]token.Pos),
	}
}

// Build adds a classified sequence to a new [Table].
func Build(classified []Classified) *Table {
	t := NewTable()
	for _, c := range classified {
		t.Add(c)
	}

	return t
}

// Add appends a classified statement.
//
// Untagged statements go to every entry. A tagged statement creates its entry from the
// current baseline on first sight and is appended to that entry only.
func (t *Table) Add(c Classified) {
	if !c.Tagged() {
		for _, name := range t.names {
			t.stmts[name] = append(t.stmts[name], c.Stmt)
		}

		return
	}

	stmts, ok := t.stmts[c.Variant]
	if !ok {
		stmts = slices.Clone(t.stmts[Baseline])
		t.names = append(t.names, c.Variant)

		if c.Marker != nil {
			t.origins[c.Variant] = c.Marker.Slash
		}
	}

	t.stmts[c.Variant] = append(stmts, c.Stmt)
}

// Len returns the number of variants, including the baseline.
func (t *Table) Len() int { return len(t.names) }

// Names returns the variant names, [Baseline] first, then in order of first appearance.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Statements returns the statement list of a variant.
func (t *Table) Statements(name string) []Stmt { return slices.Clone(t.stmts[name]) }

// Origin returns the position of the first marker naming the variant.
func (t *Table) Origin(name string) token.Pos { return t.origins[name] }
