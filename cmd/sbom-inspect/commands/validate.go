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
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/l3montree-dev/sbomparser/parser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type validationSummary struct {
	Path        string `json:"path" yaml:"path"`
	Valid       bool   `json:"valid" yaml:"valid"`
	Kind        string `json:"kind,omitempty" yaml:"kind,omitempty"`
	SpecVersion string `json:"specVersion,omitempty" yaml:"specVersion,omitempty"`
	Components  int    `json:"components" yaml:"components"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

func NewValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate one or more CycloneDX SBOMs",
		Long: `Parses every given file and reports whether it is a valid CycloneDX JSON document.
The files are parsed concurrently. The command fails if at least one file is invalid.

Examples:
  sbom-inspect validate sbom.json
  sbom-inspect validate sboms/*.json --concurrency 4 --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}

	validateCmd.Flags().Int("concurrency", 10, "Number of files parsed at the same time")

	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), config.RuntimeBaseConfig.TimeoutDuration())
	defer cancel()

	results := parseAll(ctx, cmd, newParser(), args, config.RuntimeBaseConfig.Concurrency)
	summaries := summarizeResults(results)

	err := writeOutput(cmd.OutOrStdout(), config.RuntimeBaseConfig.Output, summaries, func() table.Writer {
		return validationTable(summaries)
	})
	if err != nil {
		return err
	}

	invalid := 0
	for _, s := range summaries {
		if !s.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return errors.Errorf("%d of %d files are not valid CycloneDX SBOMs", invalid, len(summaries))
	}
	return nil
}

// parseAll parses stdin in place and all files concurrently. The results keep
// the order of args.
func parseAll(ctx context.Context, cmd *cobra.Command, p *parser.CycloneDXParser, args []string, limit int) []parser.Result {
	results := make([]parser.Result, len(args))

	files := make([]string, 0, len(args))
	indexes := make([]int, 0, len(args))
	for i, arg := range args {
		if arg == stdinArg {
			doc, err := p.ParseReader(cmd.InOrStdin())
			results[i] = parser.Result{Path: arg, Document: doc, Err: err}
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			results[i] = parser.Result{Path: arg, Err: errors.Wrap(err, "could not resolve path")}
			continue
		}
		files = append(files, abs)
		indexes = append(indexes, i)
	}

	for j, result := range parser.ParseFiles(ctx, p, files, limit) {
		result.Path = args[indexes[j]]
		results[indexes[j]] = result
	}
	return results
}

func summarizeResults(results []parser.Result) []validationSummary {
	summaries := make([]validationSummary, 0, len(results))
	for _, r := range results {
		s := validationSummary{Path: r.Path, Valid: r.Err == nil}
		if r.Err != nil {
			slog.Debug("invalid sbom", "path", r.Path, "err", r.Err)
			s.Error = r.Err.Error()
			if kind := parser.KindOf(r.Err); kind != 0 {
				s.Kind = kind.String()
			}
		} else {
			s.SpecVersion = r.Document.SpecVersion
			s.Components = r.Document.ComponentCount()
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func validationTable(summaries []validationSummary) table.Writer {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"File", "Status", "Spec Version", "Components", "Error"})
	for _, s := range summaries {
		status := text.FgGreen.Sprint("valid")
		if !s.Valid {
			status = text.FgRed.Sprint(cmp.Or(s.Kind, "invalid"))
		}
		tbl.AppendRow(table.Row{s.Path, status, s.SpecVersion, s.Components, firstLine(s.Error)})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d file(s)", len(summaries))})
	return tbl
}

// firstLine keeps multi line mapping reports out of the table cells.
func firstLine(s string) string {
	if line, _, found := strings.Cut(s, "\n"); found {
		return line + " ..."
	}
	return s
}
