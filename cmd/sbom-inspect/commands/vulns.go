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
	"log/slog"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/spf13/cobra"
)

type vulnerabilitySummary struct {
	ID       string   `json:"id" yaml:"id"`
	Severity string   `json:"severity" yaml:"severity"`
	Score    *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	Vector   string   `json:"vector,omitempty" yaml:"vector,omitempty"`
	State    string   `json:"state,omitempty" yaml:"state,omitempty"`
	Affects  []string `json:"affects" yaml:"affects"`
}

func NewVulnsCommand() *cobra.Command {
	vulnsCmd := &cobra.Command{
		Use:   "vulns <file>",
		Short: "List the vulnerabilities of an SBOM",
		Long: `Lists the vulnerabilities declared in the document with their highest severity.
Ratings without a score get a score computed from their CVSS vector.

Examples:
  sbom-inspect vulns sbom.json
  trivy image alpine -f cyclonedx | sbom-inspect vulns - -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runVulns,
	}

	return vulnsCmd
}

func runVulns(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, newParser(), args[0])
	if err != nil {
		return err
	}

	summaries := summarizeVulnerabilities(doc)
	return writeOutput(cmd.OutOrStdout(), config.RuntimeBaseConfig.Output, summaries, func() table.Writer {
		return vulnerabilityTable(summaries)
	})
}

func summarizeVulnerabilities(doc *bom.Document) []vulnerabilitySummary {
	summaries := make([]vulnerabilitySummary, 0, len(doc.Vulnerabilities))
	for i := range doc.Vulnerabilities {
		v := &doc.Vulnerabilities[i]
		s := vulnerabilitySummary{
			ID:       v.ID,
			Severity: string(v.HighestSeverity()),
			Affects:  make([]string, 0, len(v.Affects)),
		}
		s.Score, s.Vector = bestScore(v)
		if v.Analysis != nil {
			s.State = string(v.Analysis.State)
		}
		for _, a := range v.Affects {
			s.Affects = append(s.Affects, a.Ref)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// bestScore returns the highest declared or computed score of the ratings.
func bestScore(v *bom.Vulnerability) (*float64, string) {
	var best *float64
	vector := ""
	for _, r := range v.Ratings {
		score := r.Score
		if score == nil && r.Vector != "" {
			computed, err := r.ComputedScore()
			if err != nil {
				slog.Debug("could not compute score", "vulnerability", v.ID, "vector", r.Vector, "err", err)
				continue
			}
			score = &computed
		}
		if score != nil && (best == nil || *score > *best) {
			best = score
			vector = r.Vector
		}
	}
	return best, vector
}

func vulnerabilityTable(summaries []vulnerabilitySummary) table.Writer {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"ID", "Severity", "Score", "State", "Affects"})
	for _, s := range summaries {
		score := "-"
		if s.Score != nil {
			score = strconv.FormatFloat(*s.Score, 'f', 1, 64)
		}
		tbl.AppendRow(table.Row{
			s.ID,
			severityColor(bom.Severity(s.Severity)).Sprint(s.Severity),
			score,
			s.State,
			strings.Join(s.Affects, "\n"),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d vulnerabilities", len(summaries))})
	return tbl
}
