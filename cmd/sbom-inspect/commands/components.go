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
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type componentSummary struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Type       string `json:"type" yaml:"type"`
	PackageURL string `json:"purl,omitempty" yaml:"purl,omitempty"`
	Ecosystem  string `json:"ecosystem,omitempty" yaml:"ecosystem,omitempty"`
	Depth      int    `json:"depth" yaml:"depth"`
}

type componentFilter struct {
	componentType string
	analyzable    bool
}

func (f componentFilter) matches(c *bom.Component) bool {
	if f.componentType != "" && string(c.Type) != f.componentType {
		return false
	}
	if f.analyzable && !c.IsAnalyzable() {
		return false
	}
	return true
}

func NewComponentsCommand() *cobra.Command {
	componentsCmd := &cobra.Command{
		Use:   "components <file>",
		Short: "List the components of an SBOM",
		Long: `Lists every component of the document in pre-order, nested components
directly after their parent.

Examples:
  sbom-inspect components sbom.json
  sbom-inspect components sbom.json --type library --analyzable
  cat sbom.json | sbom-inspect components - --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runComponents,
	}

	componentsCmd.Flags().String("type", "", "Only list components of this type, e.g. library")
	componentsCmd.Flags().Bool("analyzable", false, "Only list components that can be matched against a vulnerability database")

	return componentsCmd
}

func runComponents(cmd *cobra.Command, args []string) error {
	componentType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}
	if componentType != "" && !bom.IsComponentType(componentType) {
		return errors.Errorf("unknown component type %q", componentType)
	}
	analyzable, err := cmd.Flags().GetBool("analyzable")
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd, newParser(), args[0])
	if err != nil {
		return err
	}

	summaries, err := summarizeComponents(doc, componentFilter{componentType: componentType, analyzable: analyzable})
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), config.RuntimeBaseConfig.Output, summaries, func() table.Writer {
		return componentTable(summaries)
	})
}

func summarizeComponents(doc *bom.Document, filter componentFilter) ([]componentSummary, error) {
	summaries := make([]componentSummary, 0, doc.ComponentCount())
	err := doc.Walk(func(c *bom.Component, depth int) error {
		if !filter.matches(c) {
			return nil
		}
		summaries = append(summaries, componentSummary{
			Name:       c.Name,
			Version:    c.Version,
			Type:       string(c.Type),
			PackageURL: c.Purl(),
			Ecosystem:  c.Ecosystem(),
			Depth:      depth,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not walk components")
	}
	return summaries, nil
}

func componentTable(summaries []componentSummary) table.Writer {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"Name", "Version", "Type", "Package URL", "Ecosystem"})
	for _, s := range summaries {
		tbl.AppendRow(table.Row{strings.Repeat("  ", s.Depth) + s.Name, s.Version, s.Type, s.PackageURL, s.Ecosystem})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d component(s)", len(summaries))})
	return tbl
}
