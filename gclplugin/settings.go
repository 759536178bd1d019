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

package gclplugin

import varies "fillmore-labs.com/varies/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// CheckOutput enables checking that variants files are up to date.
	CheckOutput *bool `json:"check-output,omitzero"`
	// Generated enables expanding templates in generated files.
	Generated *bool `json:"generated,omitzero"`
	// Suffix sets the suffix of variants files.
	Suffix *string `json:"suffix,omitzero"`
}

// Options converts [Settings] into a list of [varies.Option] for the varies analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []varies.Option {
	var opts []varies.Option

	opts = appendOption(opts, s.CheckOutput, varies.WithCheckOutput)
	opts = appendOption(opts, s.Generated, varies.WithGenerated)
	opts = appendOption(opts, s.Suffix, varies.WithSuffix)

	return opts
}

// appendOption appends a non-nil setting to a [varies.Option] list.
func appendOption[T any](opts []varies.Option, value *T, constructor func(T) varies.Option) []varies.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
