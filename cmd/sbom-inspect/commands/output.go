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
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/l3montree-dev/sbomparser/parser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const stdinArg = "-"

func newParser() *parser.CycloneDXParser {
	return parser.New(config.RuntimeBaseConfig.ParserOptions()...)
}

// loadDocument parses the file at path, or stdin if path is "-". Relative
// paths are resolved against the working directory.
func loadDocument(cmd *cobra.Command, p *parser.CycloneDXParser, path string) (*bom.Document, error) {
	if path == stdinArg {
		return p.ParseReader(cmd.InOrStdin())
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve path")
	}
	return p.ParseFile(abs)
}

// writeOutput renders data as json or yaml, or renders the table for the
// table format.
func writeOutput(w io.Writer, format string, data any, tbl func() table.Writer) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(data), "could not encode json")
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return errors.Wrap(err, "could not encode yaml")
		}
		return errors.Wrap(enc.Close(), "could not encode yaml")
	case config.OutputTable:
		t := tbl()
		t.SetStyle(table.StyleLight)
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	return errors.Errorf("unknown output format %q", format)
}

func severityColor(severity bom.Severity) text.Colors {
	switch severity {
	case "critical":
		return text.Colors{text.FgHiRed, text.Bold}
	case "high":
		return text.Colors{text.FgRed}
	case "medium":
		return text.Colors{text.FgYellow}
	case "low":
		return text.Colors{text.FgGreen}
	}
	return text.Colors{text.FgHiBlack}
}
