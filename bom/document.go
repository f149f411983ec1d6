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

// Package bom holds the typed object graph of a parsed CycloneDX document
// and the queries over its component forest.
package bom

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Document is the root of a parsed bill of materials. It is a read-only
// snapshot: nothing in this module mutates it after mapping.
type Document struct {
	BOMFormat          string              `json:"bomFormat" validate:"required"`
	SpecVersion        string              `json:"specVersion" validate:"required"`
	SerialNumber       string              `json:"serialNumber"`
	Version            int                 `json:"version"`
	Metadata           *Metadata           `json:"metadata"`
	Components         []Component         `json:"components" validate:"dive"`
	Services           []Service           `json:"services" validate:"dive"`
	ExternalReferences []ExternalReference `json:"externalReferences" validate:"dive"`
	Dependencies       []Dependency        `json:"dependencies" validate:"dive"`
	Compositions       []Composition       `json:"compositions" validate:"dive"`
	Vulnerabilities    []Vulnerability     `json:"vulnerabilities" validate:"dive"`
	Properties         []Property          `json:"properties"`
	Annotations        []Annotation        `json:"annotations"`
	Signature          any                 `json:"signature"`
}

type Annotation struct {
	BOMRef   string   `json:"bom-ref"`
	Subjects []string `json:"subjects"`
	Text     string   `json:"text"`
}

// the Has* probes are false for absent lists and for present but empty lists.
// Compare the field against nil to tell the two apart.

func (d *Document) HasComponents() bool {
	return len(d.Components) > 0
}

func (d *Document) HasVulnerabilities() bool {
	return len(d.Vulnerabilities) > 0
}

func (d *Document) HasServices() bool {
	return len(d.Services) > 0
}

func (d *Document) HasCompositions() bool {
	return len(d.Compositions) > 0
}

func (d *Document) HasDependencies() bool {
	return len(d.Dependencies) > 0
}

var ErrNoSerialNumber = errors.New("document has no serial number")

// SerialUUID parses the urn:uuid serial number of the document.
func (d *Document) SerialUUID() (uuid.UUID, error) {
	if d.SerialNumber == "" {
		return uuid.Nil, ErrNoSerialNumber
	}
	id, err := uuid.Parse(d.SerialNumber)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid serial number %q", d.SerialNumber)
	}
	return id, nil
}

// DependenciesOf returns the refs the given bom-ref depends on, nil when the
// document declares no dependency entry for it.
func (d *Document) DependenciesOf(ref string) []string {
	for _, dep := range d.Dependencies {
		if dep.Ref == ref {
			return dep.DependsOn
		}
	}
	return nil
}

// VulnerabilitiesAffecting lists the vulnerabilities that name ref in their affects.
func (d *Document) VulnerabilitiesAffecting(ref string) []*Vulnerability {
	var result []*Vulnerability
	for i := range d.Vulnerabilities {
		if d.Vulnerabilities[i].AffectsRef(ref) {
			result = append(result, &d.Vulnerabilities[i])
		}
	}
	return result
}

// RootComponent returns metadata.component, the subject the document describes.
func (d *Document) RootComponent() *Component {
	if d.Metadata == nil {
		return nil
	}
	return d.Metadata.Component
}
