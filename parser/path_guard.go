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
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var DefaultAllowedExtensions = []string{".json"}

// percent encoded dots and separators are decoded before looking for ".." segments
var encodedPathChars = strings.NewReplacer("%2e", ".", "%2f", "/", "%5c", "/", `\`, "/")

// ValidatePath checks that path is safe to read as an SBOM file. The checks
// run in a fixed order and the first failing one is returned:
//
//  1. the path is absolute
//  2. it has no ".." segment, raw or percent encoded
//  3. its directory resolves to an existing directory
//  4. if the file exists, resolving it does not leave that directory
//  5. its extension is one of allowedExtensions (default .json)
func ValidatePath(path string, allowedExtensions ...string) error {
	if len(allowedExtensions) == 0 {
		allowedExtensions = DefaultAllowedExtensions
	}

	if !filepath.IsAbs(path) {
		return validationFailed(ErrPathInvalid, "SBOM file path must be absolute", nil)
	}

	if hasTraversalSegment(path) {
		return validationFailed(ErrPathInvalid, "Directory traversal not allowed in SBOM path", nil)
	}

	realDir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return validationFailed(ErrPathInvalid, "SBOM directory does not exist or is not accessible", err)
	}
	info, err := os.Stat(realDir)
	if err != nil || !info.IsDir() {
		return validationFailed(ErrPathInvalid, "SBOM directory does not exist or is not accessible", err)
	}

	base := filepath.Base(path)
	if _, err := os.Lstat(path); err == nil {
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil || realPath != filepath.Join(realDir, base) {
			return validationFailed(ErrPathInvalid, "Directory traversal not allowed in SBOM path", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !slices.ContainsFunc(allowedExtensions, func(allowed string) bool {
		return strings.ToLower(allowed) == ext
	}) {
		return validationFailed(ErrPathInvalid, "SBOM file must have "+strings.Join(allowedExtensions, " or ")+" extension", nil)
	}

	return nil
}

func hasTraversalSegment(path string) bool {
	decoded := encodedPathChars.Replace(strings.ToLower(path))
	return slices.Contains(strings.Split(decoded, "/"), "..")
}
