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

package bom

import (
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/package-url/packageurl-go"
	"github.com/pkg/errors"
)

var ErrNoPackageURL = errors.New("component has no purl")

// ecosystem names as used by the vulnerability databases (OSV)
var ecosystems = map[string]string{
	"npm":      "npm",
	"node":     "npm",
	"maven":    "Maven",
	"java":     "Maven",
	"pypi":     "PyPI",
	"python":   "PyPI",
	"nuget":    "NuGet",
	".net":     "NuGet",
	"composer": "Packagist",
	"php":      "Packagist",
	"go":       "Go",
	"golang":   "Go",
	"cargo":    "crates.io",
	"rust":     "crates.io",
	"gem":      "RubyGems",
	"ruby":     "RubyGems",
}

// HasPackageURL reports whether the purl key was set, even to an empty string.
func (c *Component) HasPackageURL() bool {
	return c.PackageURL != nil
}

// Purl returns the declared purl or an empty string.
func (c *Component) Purl() string {
	if c.PackageURL == nil {
		return ""
	}
	return *c.PackageURL
}

func (c *Component) ParsePackageURL() (packageurl.PackageURL, error) {
	purl := c.Purl()
	if purl == "" {
		return packageurl.PackageURL{}, ErrNoPackageURL
	}
	p, err := packageurl.FromString(purl)
	if err != nil {
		return packageurl.PackageURL{}, errors.Wrapf(err, "could not parse purl %q", purl)
	}
	return p, nil
}

// Ecosystem returns the purl type of the component normalized to the
// ecosystem name vulnerability databases expect. Unknown types are returned
// unchanged, components without a valid purl yield an empty string.
func (c *Component) Ecosystem() string {
	p, err := c.ParsePackageURL()
	if err != nil {
		return ""
	}
	return NormalizeEcosystem(p.Type)
}

func NormalizeEcosystem(ecosystem string) string {
	if normalized, ok := ecosystems[strings.ToLower(ecosystem)]; ok {
		return normalized
	}
	return ecosystem
}

// PackageIdentifier returns namespace/name when the purl has a namespace,
// group:name when the component has a group and the bare name otherwise.
func (c *Component) PackageIdentifier() string {
	if p, err := c.ParsePackageURL(); err == nil && p.Namespace != "" {
		return p.Namespace + "/" + p.Name
	}
	if c.Group != "" {
		return c.Group + ":" + c.Name
	}
	return c.Name
}

// IsAnalyzable reports whether the component can be matched against a
// vulnerability database: it needs a name and a pinned version and must not
// be an operating system, device or firmware.
func (c *Component) IsAnalyzable() bool {
	switch c.Type {
	case cdx.ComponentTypeOS, cdx.ComponentTypeDevice, cdx.ComponentTypeFirmware:
		return false
	}
	if c.Name == "" || c.Version == "" {
		return false
	}
	return !strings.ContainsAny(c.Version, "*><~^")
}

// AnalyzableComponents returns the flattened components that pass IsAnalyzable.
func (d *Document) AnalyzableComponents() []*Component {
	result := make([]*Component, 0)
	for c := range d.All() {
		if c.IsAnalyzable() {
			result = append(result, c)
		}
	}
	return result
}
