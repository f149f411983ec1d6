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

type DataClassification struct {
	Flow           string `json:"flow" validate:"omitempty,oneof=inbound outbound bi-directional unknown"`
	Classification string `json:"classification"`
	Name           string `json:"name"`
	Description    string `json:"description"`
}

type Service struct {
	BOMRef             string                `json:"bom-ref"`
	Provider           *OrganizationalEntity `json:"provider"`
	Group              string                `json:"group"`
	Name               string                `json:"name" validate:"required"`
	Version            string                `json:"version"`
	Description        string                `json:"description"`
	Endpoints          []string              `json:"endpoints"`
	Authenticated      *bool                 `json:"authenticated"`
	CrossesTrustZone   *bool                 `json:"x-trust-boundary"`
	TrustZone          string                `json:"trustZone"`
	Data               []DataClassification  `json:"data" validate:"dive"`
	Licenses           []LicenseChoice       `json:"licenses"`
	ExternalReferences []ExternalReference   `json:"externalReferences" validate:"dive"`
	Properties         []Property            `json:"properties"`
	Services           []Service             `json:"services" validate:"dive"`
	ReleaseNotes       *ReleaseNotes         `json:"releaseNotes"`
	Tags               []string              `json:"tags"`
	Signature          any                   `json:"signature"`
}
