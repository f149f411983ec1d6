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
	"reflect"
	"strings"

	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/mapping"
)

var toolsType = reflect.TypeOf(bom.Tools{})

// legacyToolsHook moves the 1.4 array form of tools into Tools.Legacy.
func legacyToolsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != toolsType || (from.Kind() != reflect.Slice && from.Kind() != reflect.Array) {
		return data, nil
	}
	return map[string]any{"legacy": data}, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

// NewDocumentMapper returns the mapping engine configured for bom.Document.
func NewDocumentMapper() *mapping.Engine {
	return mapping.New(
		mapping.WithDecodeHook(legacyToolsHook),
		mapping.WithStringValidation("componenttype", bom.IsComponentType,
			"must be one of: "+joinValues(bom.ComponentTypes)),
		mapping.WithStringValidation("hashalg", bom.IsHashAlgorithm,
			"must be one of: "+joinValues(bom.HashAlgorithms)),
		mapping.WithStringValidation("externalreftype", bom.IsExternalReferenceType,
			"must be a CycloneDX external reference type"),
	)
}
