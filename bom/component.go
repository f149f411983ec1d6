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

// Component is a single node of the component forest. Nested components are
// owned by their parent.
type Component struct {
	Type               ComponentType           `json:"type" validate:"required,componenttype"`
	Name               string                  `json:"name" validate:"required"`
	BOMRef             string                  `json:"bom-ref"`
	MIMEType           string                  `json:"mime-type"`
	Supplier           *OrganizationalEntity   `json:"supplier"`
	Manufacturer       *OrganizationalEntity   `json:"manufacturer"`
	Authors            []OrganizationalContact `json:"authors"`
	Author             string                  `json:"author"`
	Publisher          string                  `json:"publisher"`
	Group              string                  `json:"group"`
	Version            string                  `json:"version"`
	Description        string                  `json:"description"`
	Scope              Scope                   `json:"scope" validate:"omitempty,oneof=required optional excluded"`
	Hashes             []Hash                  `json:"hashes" validate:"dive"`
	Licenses           []LicenseChoice         `json:"licenses"`
	Copyright          string                  `json:"copyright"`
	CPE                string                  `json:"cpe"`
	PackageURL         *string                 `json:"purl"`
	OmniborID          []string                `json:"omniborId"`
	SWHID              []string                `json:"swhid"`
	SWID               *SwidTag                `json:"swid"`
	Modified           bool                    `json:"modified"`
	Pedigree           *Pedigree               `json:"pedigree"`
	ExternalReferences []ExternalReference     `json:"externalReferences" validate:"dive"`
	Properties         []Property              `json:"properties"`
	Components         []Component             `json:"components" validate:"dive"`
	Evidence           *Evidence               `json:"evidence"`
	ReleaseNotes       *ReleaseNotes           `json:"releaseNotes"`
	Tags               []string                `json:"tags"`
}

// HasComponents reports whether the component carries at least one nested component.
func (c *Component) HasComponents() bool {
	return len(c.Components) > 0
}

// Property returns the value of the first property with the given name.
func (c *Component) Property(name string) (string, bool) {
	for _, p := range c.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
