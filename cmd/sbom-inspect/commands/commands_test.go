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
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/cmd/sbom-inspect/config"
	"github.com/l3montree-dev/sbomparser/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fixture = "../../../parser/testdata/cdx.sbom.json"

func loadFixture(t *testing.T) *bom.Document {
	t.Helper()
	doc, err := loadDocument(&cobra.Command{}, parser.New(), fixture)
	require.NoError(t, err)
	return doc
}

func TestLoadDocument(t *testing.T) {
	t.Run("should resolve relative paths", func(t *testing.T) {
		doc := loadFixture(t)
		assert.Equal(t, "1.6", doc.SpecVersion)
	})

	t.Run("should read stdin for a dash", func(t *testing.T) {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader(`{"bomFormat":"CycloneDX","specVersion":"1.4"}`))

		doc, err := loadDocument(cmd, parser.New(), "-")
		require.NoError(t, err)
		assert.Equal(t, "1.4", doc.SpecVersion)
	})
}

func TestSummarizeComponents(t *testing.T) {
	doc := loadFixture(t)

	t.Run("should list all components with their depth", func(t *testing.T) {
		summaries, err := summarizeComponents(doc, componentFilter{})
		require.NoError(t, err)
		require.Len(t, summaries, 6)
		assert.Equal(t, componentSummary{Name: "qs", Version: "6.11.0", Type: "library", PackageURL: "pkg:npm/qs@6.11.0", Ecosystem: "npm", Depth: 2}, summaries[2])
	})

	t.Run("should filter by type", func(t *testing.T) {
		summaries, err := summarizeComponents(doc, componentFilter{componentType: "operating-system"})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "alpine", summaries[0].Name)
	})

	t.Run("should filter analyzable components", func(t *testing.T) {
		summaries, err := summarizeComponents(doc, componentFilter{analyzable: true})
		require.NoError(t, err)
		assert.Len(t, summaries, 5)
	})
}

func TestDescribePackage(t *testing.T) {
	doc := loadFixture(t)

	t.Run("should describe the package", func(t *testing.T) {
		details, err := describePackage(doc, "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1")
		require.NoError(t, err)

		assert.Equal(t, "maven", details.PurlType)
		assert.Equal(t, "org.apache.logging.log4j", details.Namespace)
		assert.Equal(t, "Maven", details.Ecosystem)
		assert.Equal(t, "org.apache.logging.log4j/log4j-core", details.Identifier)
		assert.True(t, details.Analyzable)
		assert.Equal(t, []string{"CVE-2021-44228"}, details.Vulnerabilities)
	})

	t.Run("should list the dependencies", func(t *testing.T) {
		details, err := describePackage(doc, "pkg:npm/body-parser@1.20.1")
		require.NoError(t, err)
		assert.Equal(t, []string{"pkg:npm/qs@6.11.0"}, details.DependsOn)
	})

	t.Run("should fail for unknown package urls", func(t *testing.T) {
		_, err := describePackage(doc, "pkg:npm/left-pad@1.3.0")
		assert.EqualError(t, err, "no component with package url pkg:npm/left-pad@1.3.0")
	})
}

func TestSummarizeVulnerabilities(t *testing.T) {
	t.Run("should use the highest severity and score", func(t *testing.T) {
		summaries := summarizeVulnerabilities(loadFixture(t))
		require.Len(t, summaries, 2)

		assert.Equal(t, "CVE-2021-44228", summaries[0].ID)
		assert.Equal(t, "critical", summaries[0].Severity)
		require.NotNil(t, summaries[0].Score)
		assert.InDelta(t, 10.0, *summaries[0].Score, 0.001)
		assert.Equal(t, "exploitable", summaries[0].State)

		assert.Equal(t, "high", summaries[1].Severity)
		assert.Nil(t, summaries[1].Score)
		assert.Equal(t, []string{"pkg:npm/qs@6.11.0"}, summaries[1].Affects)
	})

	t.Run("should compute missing scores from the vector", func(t *testing.T) {
		doc := &bom.Document{Vulnerabilities: []bom.Vulnerability{{
			ID:      "CVE-2024-0001",
			Ratings: []bom.Rating{{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}, {Vector: "garbage"}},
		}}}

		summaries := summarizeVulnerabilities(doc)
		require.NotNil(t, summaries[0].Score)
		assert.InDelta(t, 9.8, *summaries[0].Score, 0.001)
		assert.Equal(t, "critical", summaries[0].Severity)
	})
}

func TestParseAll(t *testing.T) {
	t.Run("should keep the arguments as paths", func(t *testing.T) {
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader(`{"bomFormat":"SPDX"}`))

		results := parseAll(context.Background(), cmd, parser.New(), []string{fixture, "-", filepath.Join(t.TempDir(), "missing.json")}, 2)
		require.Len(t, results, 3)
		assert.Equal(t, fixture, results[0].Path)
		assert.NoError(t, results[0].Err)
		assert.Equal(t, "-", results[1].Path)
		assert.ErrorIs(t, results[1].Err, parser.ErrUnsupportedFormat)
		assert.ErrorIs(t, results[2].Err, parser.ErrFileNotFound)

		summaries := summarizeResults(results)
		assert.True(t, summaries[0].Valid)
		assert.Equal(t, 6, summaries[0].Components)
		assert.Equal(t, "UnsupportedFormat", summaries[1].Kind)
		assert.Equal(t, "ValidationFailed", summaries[2].Kind)
	})
}

func TestWriteOutput(t *testing.T) {
	data := []componentSummary{{Name: "qs", Type: "library", Depth: 1}}
	tbl := func() table.Writer { return componentTable(data) }

	t.Run("should write json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, config.OutputJSON, data, tbl))

		var decoded []componentSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, data, decoded)
	})

	t.Run("should write yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, config.OutputYAML, data, tbl))

		var decoded []componentSummary
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, data, decoded)
	})

	t.Run("should render a table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, config.OutputTable, data, tbl))
		// headers and footers are upper cased by the table style
		rendered := strings.ToLower(buf.String())
		assert.Contains(t, rendered, "qs")
		assert.Contains(t, rendered, "1 component(s)")
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		assert.Error(t, writeOutput(&bytes.Buffer{}, "xml", data, tbl))
	})
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", firstLine("a"))
	assert.Equal(t, "a ...", firstLine("a\nb"))
}

func TestRootCommand(t *testing.T) {
	t.Run("should run the components command end to end", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		var out bytes.Buffer
		RootCmd.SetOut(&out)
		RootCmd.SetArgs([]string{"components", fixture, "--type", "library", "--output", "json"})
		t.Cleanup(func() {
			RootCmd.SetOut(nil)
			RootCmd.SetArgs(nil)
		})

		require.NoError(t, RootCmd.Execute())

		var summaries []componentSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
		assert.Len(t, summaries, 4)
	})
}
