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

package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type packageDetails struct {
	Name            string   `json:"name" yaml:"name"`
	Version         string   `json:"version,omitempty" yaml:"version,omitempty"`
	Type            string   `json:"type" yaml:"type"`
	BOMRef          string   `json:"bomRef,omitempty" yaml:"bomRef,omitempty"`
	PackageURL      string   `json:"purl" yaml:"purl"`
	PurlType        string   `json:"purlType,omitempty" yaml:"purlType,omitempty"`
	Namespace       string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Qualifiers      string   `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Ecosystem       string   `json:"ecosystem,omitempty" yaml:"ecosystem,omitempty"`
	Identifier      string   `json:"identifier" yaml:"identifier"`
	Analyzable      bool     `json:"analyzable" yaml:"analyzable"`
	DependsOn       []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
	Vulnerabilities []string `json:"vulnerabilities,omitempty" yaml:"vulnerabilities,omitempty"`
}

func NewFindCommand() *cobra.Command {
	findCmd := &cobra.Command{
		Use:   "find <file> <purl>",
		Short: "Find a component by its package url",
		Long: `Looks up the first component (in pre-order) with exactly the given package url
and shows its package url breakdown, dependencies and vulnerabilities.

Examples:
  sbom-inspect find sbom.json "pkg:npm/lodash@4.17.20"
  sbom-inspect find sbom.json "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1" -o json`,
		Args: cobra.ExactArgs(2),
		RunE: runFind,
	}

	return findCmd
}

func runFind(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, newParser(), args[0])
	if err != nil {
		return err
	}

	details, err := describePackage(doc, args[1])
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), config.RuntimeBaseConfig.Output, details, func() table.Writer {
		return packageTable(details)
	})
}

func describePackage(doc *bom.Document, purl string) (packageDetails, error) {
	c, ok := doc.FindByPackageURL(purl)
	if !ok {
		return packageDetails{}, errors.Errorf("no component with package url %s", purl)
	}

	details := packageDetails{
		Name:       c.Name,
		Version:    c.Version,
		Type:       string(c.Type),
		BOMRef:     c.BOMRef,
		PackageURL: c.Purl(),
		Ecosystem:  c.Ecosystem(),
		Identifier: c.PackageIdentifier(),
		Analyzable: c.IsAnalyzable(),
	}

	if parsed, err := c.ParsePackageURL(); err == nil {
		details.PurlType = parsed.Type
		details.Namespace = parsed.Namespace
		details.Qualifiers = parsed.Qualifiers.String()
	}

	if c.BOMRef != "" {
		details.DependsOn = doc.DependenciesOf(c.BOMRef)
		for _, v := range doc.VulnerabilitiesAffecting(c.BOMRef) {
			details.Vulnerabilities = append(details.Vulnerabilities, v.ID)
		}
	}
	return details, nil
}

func packageTable(details packageDetails) table.Writer {
	tbl := table.NewWriter()
	tbl.AppendRows([]table.Row{
		{"Name", details.Name},
		{"Version", details.Version},
		{"Type", details.Type},
		{"Package URL", details.PackageURL},
	})
	if details.BOMRef != "" {
		tbl.AppendRow(table.Row{"BOM Ref", details.BOMRef})
	}
	tbl.AppendSeparator()
	tbl.AppendRow(table.Row{"PURL Type", details.PurlType})
	if details.Namespace != "" {
		tbl.AppendRow(table.Row{"Namespace", details.Namespace})
	}
	if details.Qualifiers != "" {
		tbl.AppendRow(table.Row{"Qualifiers", details.Qualifiers})
	}
	tbl.AppendRows([]table.Row{
		{"Ecosystem", details.Ecosystem},
		{"Identifier", details.Identifier},
		{"Analyzable", details.Analyzable},
	})
	tbl.AppendSeparator()
	tbl.AppendRows([]table.Row{
		{"Depends On", strings.Join(details.DependsOn, "\n")},
		{"Vulnerabilities", strings.Join(details.Vulnerabilities, "\n")},
	})
	return tbl
}
