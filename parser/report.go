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
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/l3montree-dev/sbomparser/mapping"
)

const (
	maxPreviewLength = 100
	maxPreviewKeys   = 3
)

func renderMappingReport(mappingErr *mapping.Error) string {
	var b strings.Builder
	b.WriteString("mapping failed with the following errors:\n\n")

	for i, fe := range mappingErr.Errors {
		path := fe.Path
		if path == "" {
			path = "root"
		}
		fmt.Fprintf(&b, "%d. Error at path: %s\n", i+1, path)
		fmt.Fprintf(&b, "   %s\n", fe.Message)
		if fe.HasValue {
			fmt.Fprintf(&b, "   Value: %s (%s)\n", PreviewValue(fe.Value), mapping.TypeLabel(fe.Value))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total errors: %d", len(mappingErr.Errors))
	return b.String()
}

// PreviewValue renders a bounded, single line preview of a generic JSON value.
func PreviewValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		runes := []rune(val)
		if len(runes) > maxPreviewLength {
			return strconv.Quote(string(runes[:maxPreviewLength])) + "..."
		}
		return strconv.Quote(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any:
		if len(val) == 0 {
			return "{}"
		}
		return fmt.Sprintf("object[%d] with keys: %s", len(val), previewKeys(slices.Sorted(maps.Keys(val))))
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		keys := make([]string, 0, min(len(val), maxPreviewKeys+1))
		for i := range min(len(val), maxPreviewKeys+1) {
			keys = append(keys, strconv.Itoa(i))
		}
		return fmt.Sprintf("array[%d] with keys: %s", len(val), previewKeys(keys))
	}
	return fmt.Sprintf("value(%T)", v)
}

func previewKeys(keys []string) string {
	if len(keys) > maxPreviewKeys {
		return strings.Join(keys[:maxPreviewKeys], ", ") + ", ..."
	}
	return strings.Join(keys, ", ")
}
