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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fillmore-labs.com/varies/internal/generate"
)

// ErrNoFiles is returned when neither arguments nor $GOFILE name a template file.
var ErrNoFiles = errors.New("no template files, run from go generate or name files")

type flags struct {
	suffix   string
	check    bool
	stdout   bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "varies [flags] [files...]",
		Short: "varies expands variant templates into generated Go files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, args)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.suffix, "suffix", generate.DefaultSuffix, "suffix of variants files")
	cmd.Flags().BoolVar(&f.check, "check", false, "only check that variants files are up to date")
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "write variants to standard output")
	cmd.Flags().StringVarP(&f.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")

	cmd.MarkFlagsMutuallyExclusive("check", "stdout")

	return cmd
}

func (f *flags) run(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	files := args
	if len(files) == 0 {
		gofile := os.Getenv("GOFILE")
		if gofile == "" {
			return ErrNoFiles
		}

		files = []string{gofile}
	}

	g := generator{
		logger: logger,
		suffix: f.suffix,
		mode:   f.mode(),
	}

	outputs, err := g.Files(cmd.Context(), files)

	for _, out := range outputs {
		if out == nil || f.mode() != modeStdout {
			continue
		}

		_, _ = cmd.OutOrStdout().Write(out.Source)
	}

	return err
}

func (f *flags) mode() mode {
	switch {
	case f.stdout:
		return modeStdout

	case f.check:
		return modeCheck

	default:
		return modeWrite
	}
}
