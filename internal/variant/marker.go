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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Baseline is the reserved name of the variant holding only untagged statements.
const Baseline = "default"

const markerPrefix = "variant("

// ParseMarker parses the text of a single comment as a `variant(name)` marker.
//
// isMarker is false for ordinary comments. A comment starting with `variant(` is always
// a marker; when its argument is not a single identifier starting with a letter the
// result is [ErrMalformedMarker].
func ParseMarker(text string) (name string, isMarker bool, err error) {
	body := commentBody(text)

	arg, found := strings.CutPrefix(body, markerPrefix)
	if !found {
		return "", false, nil
	}

	arg, found = strings.CutSuffix(arg, ")")
	if !found {
		return "", true, ErrMalformedMarker
	}

	arg = strings.TrimSpace(arg)

	switch {
	case arg == Baseline:
		return "", true, ErrReservedName

	case !validName(arg):
		return "", true, ErrMalformedMarker
	}

	return arg, true, nil
}

// commentBody strips the comment delimiters and surrounding white space.
func commentBody(text string) string {
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]

	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}

	return strings.TrimSpace(text)
}

func validName(name string) bool {
	if !token.IsIdentifier(name) {
		return false
	}

	r, _ := utf8.DecodeRuneInString(name)

	return unicode.IsLetter(r)
}

// MethodName returns the exported method name of a variant.
func MethodName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
