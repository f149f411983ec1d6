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

import "time"

type Metadata struct {
	Timestamp    *time.Time              `json:"timestamp"`
	Lifecycles   []Lifecycle             `json:"lifecycles"`
	Tools        *Tools                  `json:"tools"`
	Authors      []OrganizationalContact `json:"authors"`
	Component    *Component              `json:"component"`
	Manufacture  *OrganizationalEntity   `json:"manufacture"`
	Manufacturer *OrganizationalEntity   `json:"manufacturer"`
	Supplier     *OrganizationalEntity   `json:"supplier"`
	Licenses     []LicenseChoice         `json:"licenses"`
	Properties   []Property              `json:"properties"`
}

type Lifecycle struct {
	Phase       string `json:"phase"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tool is the legacy (1.4) tool record.
type Tool struct {
	Vendor             string              `json:"vendor"`
	Name               string              `json:"name"`
	Version            string              `json:"version"`
	Hashes             []Hash              `json:"hashes" validate:"dive"`
	ExternalReferences []ExternalReference `json:"externalReferences" validate:"dive"`
}

// Tools accepts both shapes of metadata.tools: the legacy array lands in
// Legacy, the 1.5+ object form fills Components and Services.
type Tools struct {
	Legacy     []Tool      `json:"legacy"`
	Components []Component `json:"components" validate:"dive"`
	Services   []Service   `json:"services" validate:"dive"`
}

// Names returns the names of all tools regardless of the shape they were declared in.
func (t *Tools) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Legacy)+len(t.Components)+len(t.Services))
	for _, tool := range t.Legacy {
		names = append(names, tool.Name)
	}
	for _, c := range t.Components {
		names = append(names, c.Name)
	}
	for _, s := range t.Services {
		names = append(names, s.Name)
	}
	return names
}
