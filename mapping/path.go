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
	"cmp"
	"slices"
	"strconv"
	"strings"
)

type segment struct {
	key   string
	index int
}

// splitPath splits a field path like components[0].hashes[1].alg into its
// key and index segments. Index segments have an empty key.
func splitPath(path string) []segment {
	if path == "" {
		return nil
	}

	var segments []segment
	for _, part := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(part, "[")
		if key != "" {
			segments = append(segments, segment{key: key, index: -1})
		}
		for rest != "" {
			idx, after, ok := strings.Cut(rest, "]")
			if !ok {
				break
			}
			i, err := strconv.Atoi(idx)
			if err != nil {
				// map keys also use brackets
				segments = append(segments, segment{key: idx, index: -1})
			} else {
				segments = append(segments, segment{index: i})
			}
			rest = strings.TrimPrefix(after, "[")
		}
	}
	return segments
}

// lookup resolves path inside a generic decoded JSON value.
func lookup(root any, path string) (any, bool) {
	current := root
	for _, seg := range splitPath(path) {
		if seg.key != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = m[seg.key]
			if !ok {
				return nil, false
			}
			continue
		}

		list, ok := current.([]any)
		if !ok || seg.index < 0 || seg.index >= len(list) {
			return nil, false
		}
		current = list[seg.index]
	}
	return current, true
}

// covers reports whether a diagnostic at parent already explains one at path.
func covers(parent, path string) bool {
	if parent == path || parent == "" {
		return true
	}
	return strings.HasPrefix(path, parent+".") || strings.HasPrefix(path, parent+"[")
}

// sortByPosition orders field errors by their position in the input: array
// elements by index, keys in the order they were first reported. Errors of
// one element stay together no matter which stage reported them.
func sortByPosition(fieldErrors []FieldError) {
	rank := map[string]int{}
	for _, fe := range fieldErrors {
		for _, seg := range splitPath(fe.Path) {
			if _, ok := rank[seg.key]; seg.key != "" && !ok {
				rank[seg.key] = len(rank)
			}
		}
	}

	slices.SortStableFunc(fieldErrors, func(a, b FieldError) int {
		return compareSegments(splitPath(a.Path), splitPath(b.Path), rank)
	})
}

func compareSegments(a, b []segment, rank map[string]int) int {
	for i := range min(len(a), len(b)) {
		x, y := a[i], b[i]
		switch {
		case x.key == "" && y.key == "":
			if c := cmp.Compare(x.index, y.index); c != 0 {
				return c
			}
		case x.key == "":
			return -1
		case y.key == "":
			return 1
		default:
			if c := cmp.Compare(rank[x.key], rank[y.key]); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(len(a), len(b))
}
