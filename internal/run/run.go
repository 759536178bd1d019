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

package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/varies/internal/astutil"
	"fillmore-labs.com/varies/internal/config"
	"fillmore-labs.com/varies/internal/generate"
	"fillmore-labs.com/varies/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the varies analyzer's pipeline.
//
// Templates are searched in the compiled files of the package and in the files excluded by build
// constraints, where templates usually live. Each template file is expanded and, when enabled,
// compared with its variants file.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("varies: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "Varies")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Compiled files by name, to find variants files
	compiled := make(map[string]*ast.File, len(p.Files))

	var templates []astutil.CurrentFile

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		compiled[currentFile.Name()] = file

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		templates = append(templates, currentFile)
	}

	ignored, err := r.parseIgnored(ctx, p)
	if err != nil {
		return nil, err
	}

	templates = append(templates, ignored...)

	for _, currentFile := range templates {
		r.expand(ctx, p, compiled, currentFile)
	}

	return nil, nil
}

// parseIgnored parses the files excluded by build constraints that contain the template directive.
func (r *Options) parseIgnored(ctx context.Context, p *analysis.Pass) ([]astutil.CurrentFile, error) {
	defer trace.StartRegion(ctx, "ParseIgnored").End()

	var files []astutil.CurrentFile

	for _, filename := range p.IgnoredFiles {
		if !strings.HasSuffix(filename, ".go") {
			continue
		}

		content, err := p.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("varies: %w", err)
		}

		if !bytes.Contains(content, []byte(generate.Directive)) {
			continue
		}

		// Files that don't parse are left to the compiler
		file, err := parser.ParseFile(p.Fset, filename, content, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			continue
		}

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			continue
		}

		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		files = append(files, currentFile)
	}

	return files, nil
}

// expand generates the variants of a single file and reports on its variants file.
func (r *Options) expand(ctx context.Context, p *analysis.Pass, compiled map[string]*ast.File, currentFile astutil.CurrentFile) {
	file := currentFile.File()

	out, err := generate.File(ctx, p.Fset, file, currentFile.Name(), r.Suffix)
	if err != nil {
		report.Errors(ctx, p, file.Name, err)

		return
	}

	if out == nil {
		return
	}

	trace.Logf(ctx, "template", "%s: %d functions", out.Template, len(out.Functions))

	report.Ignored(ctx, p, out.Ignored)

	if !r.Behavior.Enabled(config.CheckOutput) {
		return
	}

	generated, ok := compiled[out.Name]
	if !ok {
		for fn := range generate.Templates(file) {
			report.Missing(p, fn, out)

			break
		}

		return
	}

	current, err := p.ReadFile(out.Name)
	if err != nil {
		astutil.InternalError(p, generated.Name, "Can't read %s: %v", out.Name, err)

		return
	}

	if !bytes.Equal(current, out.Source) {
		report.Stale(p, generated, out)
	}
}
