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

package analyzer

import (
	"strconv"
	"strings"
)

// boolValue is a boolean [flag.Value] backed by a single flag of a bit mask.
type boolValue[F any, B bitFlags[F]] struct {
	flags B
	flag  F
}

type bitFlags[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// Set implements [flag.Value].
func (f boolValue[_, _]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.flag, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, _]) String() string {
	return strconv.FormatBool(f.enabled())
}

// Get implements [flag.Getter].
func (f boolValue[_, _]) Get() any {
	return f.enabled()
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// enabled is false for the zero value, which the flag package creates to determine defaults.
func (f boolValue[_, B]) enabled() bool {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.flag)
}

// parseBool is [strconv.ParseBool], also accepting "on" and "off".
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	return strconv.ParseBool(s)
}
