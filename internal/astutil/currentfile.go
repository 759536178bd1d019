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

package astutil

import (
	"go/ast"
	"go/token"
)

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *ast.File
	handle    *token.File
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and an *[ast.File].
func NewCurrentFile(fset *token.FileSet, file *ast.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	generated := ast.IsGenerated(file)

	return CurrentFile{file, handle, generated}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// File returns the syntax tree of the file.
func (c CurrentFile) File() *ast.File {
	return c.file
}

// Name returns the file name as recorded in the file set.
func (c CurrentFile) Name() string {
	return c.handle.Name()
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}
