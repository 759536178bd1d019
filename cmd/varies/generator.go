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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"runtime/trace"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/varies/internal/generate"
	"fillmore-labs.com/varies/internal/variant"
)

// ErrStale is returned in check mode for a variants file that is missing or out of date.
var ErrStale = errors.New("variants file is out of date")

type mode uint8

const (
	modeWrite mode = iota
	modeCheck
	modeStdout
)

// generator expands template files.
type generator struct {
	logger *slog.Logger
	suffix string
	mode   mode
}

// Files expands the given template files concurrently.
//
// The outputs are returned in the order of files, nil for files without templates.
// Errors of all files are joined.
func (g generator) Files(ctx context.Context, files []string) ([]*generate.Output, error) {
	ctx, task := trace.NewTask(ctx, "Varies")
	defer task.End()

	outputs := make([]*generate.Output, len(files))
	errs := make([]error, len(files))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, filename := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err

				return nil
			}

			outputs[i], errs[i] = g.File(ctx, filename)

			return nil
		})
	}

	_ = eg.Wait() // errors are collected per file

	return outputs, errors.Join(errs...)
}

// File expands a single template file, writing or checking its variants file according to the mode.
func (g generator) File(ctx context.Context, filename string) (*generate.Output, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	out, err := generate.File(ctx, fset, f, filename, g.suffix)
	if err != nil {
		return nil, positioned(fset, err)
	}

	if out == nil {
		g.logger.LogAttrs(ctx, slog.LevelInfo, "No templates", slog.String("file", filename))

		return nil, nil
	}

	for _, c := range out.Ignored {
		g.logger.LogAttrs(ctx, slog.LevelWarn, "Variant marker on a binding is ignored",
			slog.String("pos", fset.Position(c.Pos()).String()),
			slog.String("marker", c.Text))
	}

	switch g.mode {
	case modeStdout:
		return out, nil

	case modeCheck:
		return out, check(out)

	default:
		if err := os.WriteFile(out.Name, out.Source, 0o644); err != nil { //nolint:gosec
			return nil, err
		}

		g.logger.LogAttrs(ctx, slog.LevelInfo, "Generated",
			slog.String("file", out.Name),
			slog.Any("functions", out.Functions))

		return out, nil
	}
}

// check compares a variants file with a fresh expansion.
func check(out *generate.Output) error {
	current, err := os.ReadFile(out.Name)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", out.Name, ErrStale)

	case err != nil:
		return err

	case !bytes.Equal(current, out.Source):
		return fmt.Errorf("%s: %w", out.Name, ErrStale)

	default:
		return nil
	}
}

// positioned prefixes pipeline errors with their source position.
func positioned(fset *token.FileSet, err error) error {
	errs := generate.Split(err)

	for i, err := range errs {
		var verr *variant.Error
		if errors.As(err, &verr) && verr.Pos.IsValid() {
			errs[i] = fmt.Errorf("%s: %w", fset.Position(verr.Pos), err)
		}
	}

	return errors.Join(errs...)
}
