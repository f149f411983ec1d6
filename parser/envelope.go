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
	"slices"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

var supportedSpecVersions = []string{
	cdx.SpecVersion1_6.String(),
	cdx.SpecVersion1_5.String(),
	cdx.SpecVersion1_4.String(),
}

// SupportedSpecVersions returns the major.minor versions a document may declare.
func SupportedSpecVersions() []string {
	return slices.Clone(supportedSpecVersions)
}

// IsSupportedSpecVersion matches by prefix so patch levels and pre-release
// suffixes like 1.6-rc1 are accepted.
func IsSupportedSpecVersion(version string) bool {
	return slices.ContainsFunc(supportedSpecVersions, func(prefix string) bool {
		return strings.HasPrefix(version, prefix)
	})
}

// ValidateEnvelope checks the discriminating fields of a decoded document
// before it is mapped. The checks fail fast in a fixed order:
// bomFormat presence, type and value, then specVersion presence, type and value.
// A key holding null counts as missing.
func ValidateEnvelope(data any) error {
	obj, ok := data.(map[string]any)
	if !ok {
		return validationFailed(ErrStructureInvalid, "Decoded JSON root must be an object", nil)
	}

	format, err := requiredString(obj, "bomFormat")
	if err != nil {
		return err
	}
	if format != cdx.BOMFormat {
		return unsupportedFormat(format)
	}

	version, err := requiredString(obj, "specVersion")
	if err != nil {
		return err
	}
	if !IsSupportedSpecVersion(version) {
		return unsupportedVersion(version)
	}

	return nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", validationFailed(ErrFieldMissing, "Missing required field: "+key, nil)
	}
	s, ok := raw.(string)
	if !ok {
		return "", validationFailed(ErrFieldTypeInvalid, "Field "+key+" must be a string", nil)
	}
	return s, nil
}
