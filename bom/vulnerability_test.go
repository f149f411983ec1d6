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
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputedScore(t *testing.T) {
	t.Run("should compute a cvss 3.1 base score", func(t *testing.T) {
		r := Rating{Method: cdx.ScoringMethodCVSSv31, Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}
		score, err := r.ComputedScore()
		require.NoError(t, err)
		assert.InDelta(t, 9.8, score, 0.01)
	})

	t.Run("should compute a cvss 3.0 base score from the vector prefix", func(t *testing.T) {
		r := Rating{Vector: "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}
		score, err := r.ComputedScore()
		require.NoError(t, err)
		assert.InDelta(t, 9.8, score, 0.01)
	})

	t.Run("should compute a cvss 2 base score", func(t *testing.T) {
		r := Rating{Method: cdx.ScoringMethodCVSSv2, Vector: "AV:N/AC:L/Au:N/C:P/I:P/A:P"}
		score, err := r.ComputedScore()
		require.NoError(t, err)
		assert.InDelta(t, 7.5, score, 0.01)
	})

	t.Run("should compute a cvss 4 score", func(t *testing.T) {
		r := Rating{Method: cdx.ScoringMethodCVSSv4, Vector: "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N"}
		score, err := r.ComputedScore()
		require.NoError(t, err)
		assert.InDelta(t, 9.3, score, 0.01)
	})

	t.Run("should fail without a vector", func(t *testing.T) {
		_, err := Rating{Method: cdx.ScoringMethodCVSSv31}.ComputedScore()
		assert.ErrorIs(t, err, ErrNoVector)
	})

	t.Run("should fail for an invalid vector", func(t *testing.T) {
		_, err := Rating{Vector: "CVSS:3.1/AV:X"}.ComputedScore()
		assert.Error(t, err)
	})

	t.Run("should fail for other scoring methods", func(t *testing.T) {
		_, err := Rating{Method: "OWASP", Vector: "SL:1/M:1/O:0/S:2"}.ComputedScore()
		assert.Error(t, err)
	})
}

func TestHighestSeverity(t *testing.T) {
	score := 5.0

	t.Run("should return the most severe declared rating", func(t *testing.T) {
		v := Vulnerability{Ratings: []Rating{
			{Severity: cdx.SeverityLow},
			{Severity: cdx.SeverityCritical},
			{Severity: cdx.SeverityMedium},
		}}
		assert.Equal(t, cdx.SeverityCritical, v.HighestSeverity())
	})

	t.Run("should derive the severity from the score", func(t *testing.T) {
		v := Vulnerability{Ratings: []Rating{{Score: &score}}}
		assert.Equal(t, cdx.SeverityMedium, v.HighestSeverity())
	})

	t.Run("should derive the severity from the vector", func(t *testing.T) {
		v := Vulnerability{Ratings: []Rating{
			{Severity: cdx.SeverityLow},
			{Severity: "unknown", Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"},
		}}
		assert.Equal(t, cdx.SeverityCritical, v.HighestSeverity())
	})

	t.Run("should return an empty severity without ratings", func(t *testing.T) {
		assert.Equal(t, Severity(""), (&Vulnerability{}).HighestSeverity())
	})
}

func TestVulnerabilitiesAffecting(t *testing.T) {
	doc := &Document{Vulnerabilities: []Vulnerability{
		{ID: "CVE-2021-44228", Affects: []Affects{{Ref: "log4j"}}},
		{ID: "CVE-2022-22965", Affects: []Affects{{Ref: "spring"}}},
		{ID: "CVE-2021-45046", Affects: []Affects{{Ref: "spring"}, {Ref: "log4j"}}},
	}}

	t.Run("should return every vulnerability affecting the ref", func(t *testing.T) {
		vulns := doc.VulnerabilitiesAffecting("log4j")
		require.Len(t, vulns, 2)
		assert.Equal(t, "CVE-2021-44228", vulns[0].ID)
		assert.Equal(t, "CVE-2021-45046", vulns[1].ID)
	})

	t.Run("should return nothing for an unknown ref", func(t *testing.T) {
		assert.Empty(t, doc.VulnerabilitiesAffecting("unknown"))
	})
}
