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

package report

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"path/filepath"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/varies/internal/astutil"
	"fillmore-labs.com/varies/internal/generate"
	"fillmore-labs.com/varies/internal/variant"
)

// Category of all diagnostics reported by this package.
const Category = "varies"

// Errors reports the fatal errors of a failed expansion.
//
// Errors without a usable position are reported as internal errors on fallback.
func Errors(ctx context.Context, p *analysis.Pass, fallback analysis.Range, err error) {
	defer trace.StartRegion(ctx, "ReportErrors").End()

	for _, err := range generate.Split(err) {
		var verr *variant.Error
		if !errors.As(err, &verr) || !verr.Pos.IsValid() {
			astutil.InternalError(p, fallback, "%v", err)

			continue
		}

		p.Report(analysis.Diagnostic{
			Pos:      verr.Pos,
			Category: Category,
			Message:  verr.Error(),
		})
	}
}

// Ignored reports variant markers attached to bindings.
func Ignored(ctx context.Context, p *analysis.Pass, markers []*ast.Comment) {
	defer trace.StartRegion(ctx, "ReportIgnored").End()

	for _, c := range markers {
		p.Report(analysis.Diagnostic{
			Pos:      c.Pos(),
			End:      c.End(),
			Category: Category,
			Message:  fmt.Sprintf("variant marker %q on a binding is ignored", c.Text),
		})
	}
}

// Missing reports a template file whose variants file does not exist.
//
// The diagnostic is placed on the name of the first template, with the directive as related information.
func Missing(p *analysis.Pass, fn *ast.FuncDecl, out *generate.Output) {
	diagnostic := analysis.Diagnostic{
		Pos:      fn.Name.Pos(),
		End:      fn.Name.End(),
		Category: Category,
		Message:  fmt.Sprintf("variants of %s have not been generated", filepath.Base(out.Template)),
	}

	if directive := generate.DirectiveOf(fn); directive != nil {
		diagnostic.Related = []analysis.RelatedInformation{{
			Pos:     directive.Pos(),
			End:     directive.End(),
			Message: "Template declared here",
		}}
	}

	p.Report(diagnostic)
}

// Stale reports a variants file that differs from the expansion of its template.
//
// The suggested fix replaces the whole file with the fresh expansion.
func Stale(p *analysis.Pass, generated *ast.File, out *generate.Output) {
	message := fmt.Sprintf("%s is out of date", filepath.Base(out.Name))

	p.Report(analysis.Diagnostic{
		Pos:      generated.Package,
		End:      generated.Name.End(),
		Category: Category,
		Message:  message,
		SuggestedFixes: []analysis.SuggestedFix{{
			Message:   "Regenerate " + filepath.Base(out.Name),
			TextEdits: regenerate(generated, out.Source),
		}},
	})
}

// regenerate returns the edit replacing the whole content of file.
func regenerate(file *ast.File, source []byte) []analysis.TextEdit {
	return []analysis.TextEdit{{Pos: file.FileStart, End: file.FileEnd, NewText: source}}
}
