// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mapping

import (
	"fmt"
	"strings"
)

// FieldError is a single diagnostic of a failed mapping. Path uses the input
// key names, e.g. components[0].hashes[1].alg. An empty path is the root.
type FieldError struct {
	Path    string
	Message string
	// Value is the offending input value. HasValue is false when the input
	// has no value at Path, e.g. for a missing required field.
	Value    any
	HasValue bool
}

func (e FieldError) String() string {
	path := e.Path
	if path == "" {
		path = "root"
	}
	return path + ": " + e.Message
}

// Error aggregates every field diagnostic of one Map call.
type Error struct {
	Errors []FieldError
}

func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return "mapping failed"
	case 1:
		return "mapping failed: " + e.Errors[0].String()
	}

	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.String())
	}
	return fmt.Sprintf("mapping failed with %d errors: %s", len(e.Errors), strings.Join(parts, "; "))
}
