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

// Package analyzer implements the varies static analysis pass.
//
// # Overview
//
// Varies expands variant templates into one method per variant. A template is a function
// marked with the //varies:generate directive whose statements may carry a //variant(name)
// marker. The baseline variant Default holds all unmarked statements; each named variant
// holds the baseline plus the statements marked with its name.
//
// The analyzer reports malformed templates and variants files that are missing or out of date.
//
// # Example
//
// Template, in a file excluded from builds by a //go:build varies constraint:
//
//	//varies:generate
//	func compute(x int) int {
//	    y := x
//	    //variant(extra)
//	    y += 1
//	    return y
//	}
//
// Generated variants, called as compute{}.Default(x) and compute{}.Extra(x):
//
//	// compute holds generated variants.
//	type compute struct{}
//
//	func (compute) Default(x int) int {
//	    y := x
//	    return y
//	}
//
//	func (compute) Extra(x int) int {
//	    y := x
//	    y += 1
//	    return y
//	}
//
// # Suggested Fixes
//
// For an outdated variants file the analyzer suggests replacing it with the fresh expansion.
package analyzer
