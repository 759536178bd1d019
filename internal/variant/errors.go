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
	"errors"
	"fmt"
	"go/token"
)

// Fatal classification errors.
var (
	// ErrUnrecognizedStatement is returned for a statement whose annotations can't be located.
	ErrUnrecognizedStatement = errors.New("unrecognized statement shape")

	// ErrMalformedMarker is returned when a variant marker has no single identifier argument.
	ErrMalformedMarker = errors.New("malformed variant marker")

	// ErrReservedName is returned when a marker names the baseline variant explicitly.
	ErrReservedName = errors.New("reserved variant name")

	// ErrMultipleMarkers is returned when a statement carries more than one variant marker.
	ErrMultipleMarkers = errors.New("multiple variant markers")

	// ErrMisplacedMarker is returned for a variant marker that is not attached to a top-level
	// statement of the template body, like one inside a nested block.
	ErrMisplacedMarker = errors.New("variant marker not on a top-level statement")
)

// Error is a fatal classification error at a source position.
type Error struct {
	Pos  token.Pos // Position of the offending statement or marker
	Text string    // Offending marker text or statement kind
	Err  error     // One of the sentinel errors above
}

func (e *Error) Error() string {
	return fmt.Sprintf("variant: %v: %q", e.Err, e.Text)
}

func (e *Error) Unwrap() error { return e.Err }
