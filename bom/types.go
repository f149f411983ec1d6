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
	"slices"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// the enumerations are aliases of the cyclonedx-go types so callers can compare
// against the cdx constants directly.
type (
	ComponentType               = cdx.ComponentType
	Scope                       = cdx.Scope
	HashAlgorithm               = cdx.HashAlgorithm
	ExternalReferenceType       = cdx.ExternalReferenceType
	Severity                    = cdx.Severity
	ScoringMethod               = cdx.ScoringMethod
	ImpactAnalysisState         = cdx.ImpactAnalysisState
	ImpactAnalysisJustification = cdx.ImpactAnalysisJustification
	ImpactAnalysisResponse      = cdx.ImpactAnalysisResponse
	CompositionAggregate        = cdx.CompositionAggregate
)

// ComponentTypes lists every component type a parsed document may carry.
var ComponentTypes = []ComponentType{
	cdx.ComponentTypeApplication,
	cdx.ComponentTypeContainer,
	cdx.ComponentTypeData,
	cdx.ComponentTypeDevice,
	cdx.ComponentTypeDeviceDriver,
	cdx.ComponentTypeFirmware,
	cdx.ComponentTypeFile,
	cdx.ComponentTypeFramework,
	cdx.ComponentTypeLibrary,
	cdx.ComponentTypeMachineLearningModel,
	cdx.ComponentTypeOS,
	cdx.ComponentTypePlatform,
}

var HashAlgorithms = []HashAlgorithm{
	"MD5",
	"SHA-1",
	cdx.HashAlgoSHA256,
	"SHA-384",
	"SHA-512",
	"SHA3-256",
	"SHA3-384",
	"SHA3-512",
	"BLAKE2b-256",
	"BLAKE2b-384",
	"BLAKE2b-512",
	"BLAKE3",
}

// ExternalReferenceTypes covers the reference types of CycloneDX 1.4 up to 1.6.
var ExternalReferenceTypes = []ExternalReferenceType{
	"vcs", "issue-tracker", "website", "advisories", "bom", "mailing-list",
	"social", "chat", "documentation", "support", "source-distribution",
	"distribution", "distribution-intake", "license", "build-meta",
	"build-system", "release-notes", "security-contact", "model-card", "log",
	"configuration", "evidence", "formulation", "attestation", "threat-model",
	"adversary-model", "risk-assessment", "vulnerability-assertion",
	"exploitability-statement", "pentest-report", "static-analysis-report",
	"dynamic-analysis-report", "runtime-analysis-report",
	"component-analysis-report", "maturity-report", "certification-report",
	"codified-infrastructure", "quality-metrics", "poam",
	"electronic-signature", "digital-signature", "rfc-9116", "other",
}

func IsComponentType(s string) bool {
	return slices.Contains(ComponentTypes, ComponentType(s))
}

func IsHashAlgorithm(s string) bool {
	return slices.Contains(HashAlgorithms, HashAlgorithm(s))
}

func IsExternalReferenceType(s string) bool {
	return slices.Contains(ExternalReferenceTypes, ExternalReferenceType(s))
}
