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

package parser

import (
	"encoding/json"
	"reflect"
	"unicode/utf8"
)

// decodeJSON decodes UTF-8 JSON text into generic values (map[string]any,
// []any, string, float64, bool, nil). Input nesting more than maxDepth arrays
// or objects deep is rejected before decoding.
func decodeJSON(content []byte, maxDepth int) (any, error) {
	if !utf8.Valid(content) {
		return nil, invalidJSON(ErrInvalidEncoding, "Malformed UTF-8 characters, possibly incorrectly encoded", nil)
	}
	if err := checkDepth(content, maxDepth); err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, invalidJSON(ErrSyntax, err.Error(), err)
	}
	return data, nil
}

// checkDepth scans the raw text for the nesting level of arrays and objects.
// Brackets inside strings are skipped, syntax errors are left to the decoder.
func checkDepth(content []byte, maxDepth int) error {
	depth := 0
	inString, escaped := false, false

	for _, b := range content {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > maxDepth {
				return invalidJSON(ErrDepthExceeded, "Maximum stack depth exceeded", nil)
			}
		case '}', ']':
			depth--
		}
	}
	return nil
}

// checkValueDepth applies the nesting bound to a value that was decoded by the
// caller. Maps, slices, arrays, structs and pointers each count as one level,
// so cyclic values are rejected like any other too deep input.
func checkValueDepth(data any, maxDepth int) error {
	if exceedsDepth(reflect.ValueOf(data), 0, maxDepth) {
		return validationFailed(ErrDepthExceeded, "Maximum stack depth exceeded", nil)
	}
	return nil
}

func exceedsDepth(v reflect.Value, depth int, maxDepth int) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return false
		}
		return exceedsDepth(v.Elem(), depth, maxDepth)
	case reflect.Ptr:
		if v.IsNil() {
			return false
		}
		if depth+1 > maxDepth {
			return true
		}
		return exceedsDepth(v.Elem(), depth+1, maxDepth)
	case reflect.Map:
		if depth+1 > maxDepth {
			return true
		}
		iter := v.MapRange()
		for iter.Next() {
			if exceedsDepth(iter.Value(), depth+1, maxDepth) {
				return true
			}
		}
	case reflect.Slice, reflect.Array:
		if depth+1 > maxDepth {
			return true
		}
		for i := range v.Len() {
			if exceedsDepth(v.Index(i), depth+1, maxDepth) {
				return true
			}
		}
	case reflect.Struct:
		if depth+1 > maxDepth {
			return true
		}
		for i := range v.NumField() {
			if exceedsDepth(v.Field(i), depth+1, maxDepth) {
				return true
			}
		}
	}
	return false
}
