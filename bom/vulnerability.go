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
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
	"github.com/pkg/errors"
)

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Rating struct {
	Source        *Source       `json:"source"`
	Score         *float64      `json:"score"`
	Severity      Severity      `json:"severity" validate:"omitempty,oneof=critical high medium low info none unknown"`
	Method        ScoringMethod `json:"method"`
	Vector        string        `json:"vector"`
	Justification string        `json:"justification"`
}

type Advisory struct {
	Title string `json:"title"`
	URL   string `json:"url" validate:"required"`
}

type Credits struct {
	Organizations []OrganizationalEntity  `json:"organizations"`
	Individuals   []OrganizationalContact `json:"individuals"`
}

type Analysis struct {
	State         ImpactAnalysisState         `json:"state"`
	Justification ImpactAnalysisJustification `json:"justification"`
	Response      []ImpactAnalysisResponse    `json:"response"`
	Detail        string                      `json:"detail"`
	FirstIssued   *time.Time                  `json:"firstIssued"`
	LastUpdated   *time.Time                  `json:"lastUpdated"`
}

type AffectedVersion struct {
	Version string `json:"version"`
	Range   string `json:"range"`
	Status  string `json:"status" validate:"omitempty,oneof=affected unaffected unknown"`
}

type Affects struct {
	Ref      string            `json:"ref" validate:"required"`
	Versions []AffectedVersion `json:"versions" validate:"dive"`
}

type ProofOfConcept struct {
	ReproductionSteps  string         `json:"reproductionSteps"`
	Environment        string         `json:"environment"`
	SupportingMaterial []AttachedText `json:"supportingMaterial"`
}

type VulnerabilityReference struct {
	ID     string  `json:"id" validate:"required"`
	Source *Source `json:"source"`
}

type Vulnerability struct {
	BOMRef         string                   `json:"bom-ref"`
	ID             string                   `json:"id"`
	Source         *Source                  `json:"source"`
	References     []VulnerabilityReference `json:"references" validate:"dive"`
	Ratings        []Rating                 `json:"ratings" validate:"dive"`
	CWEs           []int                    `json:"cwes"`
	Description    string                   `json:"description"`
	Detail         string                   `json:"detail"`
	Recommendation string                   `json:"recommendation"`
	Workaround     string                   `json:"workaround"`
	ProofOfConcept *ProofOfConcept          `json:"proofOfConcept"`
	Advisories     []Advisory               `json:"advisories" validate:"dive"`
	Created        *time.Time               `json:"created"`
	Published      *time.Time               `json:"published"`
	Updated        *time.Time               `json:"updated"`
	Rejected       *time.Time               `json:"rejected"`
	Credits        *Credits                 `json:"credits"`
	Tools          *Tools                   `json:"tools"`
	Analysis       *Analysis                `json:"analysis"`
	Affects        []Affects                `json:"affects" validate:"dive"`
	Properties     []Property               `json:"properties"`
}

var ErrNoVector = errors.New("rating has no vector")

// ComputedScore derives the base score from the rating vector. Ratings
// without a method are dispatched on the vector prefix.
func (r Rating) ComputedScore() (float64, error) {
	if r.Vector == "" {
		return 0, ErrNoVector
	}

	switch {
	case r.Method == cdx.ScoringMethodCVSSv4 || strings.HasPrefix(r.Vector, "CVSS:4.0"):
		cvss, err := gocvss40.ParseVector(r.Vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 4.0 vector")
		}
		return cvss.Score(), nil
	case strings.HasPrefix(r.Vector, "CVSS:3.1"):
		cvss, err := gocvss31.ParseVector(r.Vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 3.1 vector")
		}
		return cvss.BaseScore(), nil
	case strings.HasPrefix(r.Vector, "CVSS:3.0"):
		cvss, err := gocvss30.ParseVector(r.Vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 3.0 vector")
		}
		return cvss.BaseScore(), nil
	case r.Method == cdx.ScoringMethodCVSSv2 || r.Method == "":
		cvss, err := gocvss20.ParseVector(strings.Trim(r.Vector, "()"))
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 2.0 vector")
		}
		return cvss.BaseScore(), nil
	}

	return 0, errors.Errorf("unsupported scoring method %q", r.Method)
}

var severityRank = map[Severity]int{
	cdx.SeverityCritical: 6,
	cdx.SeverityHigh:     5,
	cdx.SeverityMedium:   4,
	cdx.SeverityLow:      3,
	"info":               2,
	"none":               1,
}

// HighestSeverity returns the most severe rating. Ratings without a severity
// are classified by their score. An empty severity is returned when nothing
// can be derived.
func (v *Vulnerability) HighestSeverity() Severity {
	var highest Severity
	for _, r := range v.Ratings {
		s := r.Severity
		if s == "" || s == "unknown" {
			s = severityFromRating(r)
		}
		if severityRank[s] > severityRank[highest] {
			highest = s
		}
	}
	return highest
}

func severityFromRating(r Rating) Severity {
	score := 0.0
	if r.Score != nil {
		score = *r.Score
	} else if computed, err := r.ComputedScore(); err == nil {
		score = computed
	} else {
		return ""
	}

	switch {
	case score >= 9.0:
		return cdx.SeverityCritical
	case score >= 7.0:
		return cdx.SeverityHigh
	case score >= 4.0:
		return cdx.SeverityMedium
	case score > 0:
		return cdx.SeverityLow
	default:
		return "none"
	}
}

// AffectsRef reports whether the vulnerability lists ref in its affects.
func (v *Vulnerability) AffectsRef(ref string) bool {
	for _, a := range v.Affects {
		if a.Ref == ref {
			return true
		}
	}
	return false
}
