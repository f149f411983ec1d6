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

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Hash struct {
	Algorithm HashAlgorithm `json:"alg" validate:"required,hashalg"`
	Value     string        `json:"content" validate:"required"`
}

type AttachedText struct {
	ContentType string `json:"contentType"`
	Encoding    string `json:"encoding"`
	Content     string `json:"content"`
}

type ExternalReference struct {
	URL     string                `json:"url" validate:"required"`
	Type    ExternalReferenceType `json:"type" validate:"required,externalreftype"`
	Comment string                `json:"comment"`
	Hashes  []Hash                `json:"hashes" validate:"dive"`
}

type OrganizationalContact struct {
	BOMRef string `json:"bom-ref"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type PostalAddress struct {
	BOMRef              string `json:"bom-ref"`
	Country             string `json:"country"`
	Region              string `json:"region"`
	Locality            string `json:"locality"`
	PostOfficeBoxNumber string `json:"postOfficeBoxNumber"`
	PostalCode          string `json:"postalCode"`
	StreetAddress       string `json:"streetAddress"`
}

type OrganizationalEntity struct {
	BOMRef  string                  `json:"bom-ref"`
	Name    string                  `json:"name"`
	Address *PostalAddress          `json:"address"`
	URL     []string                `json:"url"`
	Contact []OrganizationalContact `json:"contact"`
}

type License struct {
	BOMRef          string        `json:"bom-ref"`
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Acknowledgement string        `json:"acknowledgement"`
	Text            *AttachedText `json:"text"`
	URL             string        `json:"url"`
}

// LicenseChoice holds either a single license or an SPDX expression.
type LicenseChoice struct {
	License         *License `json:"license"`
	Expression      *string  `json:"expression"`
	Acknowledgement string   `json:"acknowledgement"`
	BOMRef          string   `json:"bom-ref"`
}

// HasExpression reports whether the expression key was set, even to an empty string.
func (l LicenseChoice) HasExpression() bool {
	return l.Expression != nil
}

type SwidTag struct {
	TagID      string        `json:"tagId" validate:"required"`
	Name       string        `json:"name" validate:"required"`
	Version    string        `json:"version"`
	TagVersion int           `json:"tagVersion"`
	Patch      bool          `json:"patch"`
	Text       *AttachedText `json:"text"`
	URL        string        `json:"url"`
}

type Note struct {
	Locale string       `json:"locale"`
	Text   AttachedText `json:"text"`
}

type IssueSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Issue struct {
	Type        string       `json:"type" validate:"required,oneof=defect enhancement security"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Source      *IssueSource `json:"source"`
	References  []string     `json:"references"`
}

type ReleaseNotes struct {
	Type          string     `json:"type" validate:"required"`
	Title         string     `json:"title"`
	FeaturedImage string     `json:"featuredImage"`
	SocialImage   string     `json:"socialImage"`
	Description   string     `json:"description"`
	Timestamp     *time.Time `json:"timestamp"`
	Aliases       []string   `json:"aliases"`
	Tags          []string   `json:"tags"`
	Resolves      []Issue    `json:"resolves" validate:"dive"`
	Notes         []Note     `json:"notes"`
	Properties    []Property `json:"properties"`
}

type IdentifiableAction struct {
	Timestamp *time.Time `json:"timestamp"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
}

type Commit struct {
	UID       string              `json:"uid"`
	URL       string              `json:"url"`
	Author    *IdentifiableAction `json:"author"`
	Committer *IdentifiableAction `json:"committer"`
	Message   string              `json:"message"`
}

type Diff struct {
	Text *AttachedText `json:"text"`
	URL  string        `json:"url"`
}

type Patch struct {
	Type     string  `json:"type" validate:"required,oneof=unofficial monkey backport cherry-pick"`
	Diff     *Diff   `json:"diff"`
	Resolves []Issue `json:"resolves" validate:"dive"`
}

type Pedigree struct {
	Ancestors   []Component `json:"ancestors" validate:"dive"`
	Descendants []Component `json:"descendants" validate:"dive"`
	Variants    []Component `json:"variants" validate:"dive"`
	Commits     []Commit    `json:"commits"`
	Patches     []Patch     `json:"patches" validate:"dive"`
	Notes       string      `json:"notes"`
}

type EvidenceOccurrence struct {
	BOMRef            string `json:"bom-ref"`
	Location          string `json:"location"`
	Line              int    `json:"line"`
	Offset            int    `json:"offset"`
	Symbol            string `json:"symbol"`
	AdditionalContext string `json:"additionalContext"`
}

type CallstackFrame struct {
	Package      string   `json:"package"`
	Module       string   `json:"module"`
	Function     string   `json:"function"`
	Parameters   []string `json:"parameters"`
	Line         int      `json:"line"`
	Column       int      `json:"column"`
	FullFilename string   `json:"fullFilename"`
}

type Callstack struct {
	Frames []CallstackFrame `json:"frames"`
}

// Identity is an object in 1.5 and a list of objects in 1.6, it is kept as decoded.
type Evidence struct {
	Identity    any                  `json:"identity"`
	Occurrences []EvidenceOccurrence `json:"occurrences"`
	Callstack   *Callstack           `json:"callstack"`
	Licenses    []LicenseChoice      `json:"licenses"`
	Copyright   []Copyright          `json:"copyright"`
}

type Copyright struct {
	Text string `json:"text"`
}

type Dependency struct {
	Ref       string   `json:"ref" validate:"required"`
	DependsOn []string `json:"dependsOn"`
	Provides  []string `json:"provides"`
}

type Composition struct {
	BOMRef          string               `json:"bom-ref"`
	Aggregate       CompositionAggregate `json:"aggregate" validate:"required"`
	Assemblies      []string             `json:"assemblies"`
	Dependencies    []string             `json:"dependencies"`
	Vulnerabilities []string             `json:"vulnerabilities"`
	Signature       any                  `json:"signature"`
}
