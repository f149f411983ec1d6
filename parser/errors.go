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

package parser

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	KindInvalidJSON Kind = iota + 1
	KindValidationFailed
	KindUnsupportedFormat
	KindUnsupportedVersion
)

func (k Kind) String() string {
	switch k {
	case KindInvalidJSON:
		return "InvalidJson"
	case KindValidationFailed:
		return "ValidationFailed"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	}
	return "Unknown"
}

// sentinels of the error kinds, match them with errors.Is
var (
	ErrInvalidJSON        = errors.New("invalid json")
	ErrValidationFailed   = errors.New("sbom validation failed")
	ErrUnsupportedFormat  = errors.New("unsupported sbom format")
	ErrUnsupportedVersion = errors.New("unsupported sbom version")
)

// reasons of a ValidationFailed error
var (
	ErrPathInvalid      = errors.New("path invalid")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileUnreadable   = errors.New("file not readable")
	ErrFileTooLarge     = errors.New("file too large")
	ErrStructureInvalid = errors.New("structure invalid")
	ErrFieldMissing     = errors.New("field missing")
	ErrFieldTypeInvalid = errors.New("field type invalid")
	ErrMappingFailed    = errors.New("mapping failed")
)

// reasons of an InvalidJSON error
var (
	ErrDepthExceeded   = errors.New("maximum depth exceeded")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrSyntax          = errors.New("syntax error")
)

// Error is the single error type returned by the parser. Reason refines
// the kind, Value carries the offending envelope value for the unsupported
// kinds.
type Error struct {
	Kind    Kind
	Reason  error
	Message string
	Value   string
	cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidJSON:
		return "Invalid JSON: " + e.Message
	case KindValidationFailed:
		return "SBOM validation failed: " + e.Message
	case KindUnsupportedFormat:
		return "Unsupported SBOM format: " + e.Value
	case KindUnsupportedVersion:
		return "Unsupported SBOM version: " + e.Value
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	if e.Reason != nil && target == e.Reason {
		return true
	}
	switch e.Kind {
	case KindInvalidJSON:
		return target == ErrInvalidJSON
	case KindValidationFailed:
		return target == ErrValidationFailed
	case KindUnsupportedFormat:
		return target == ErrUnsupportedFormat
	case KindUnsupportedVersion:
		return target == ErrUnsupportedVersion
	}
	return false
}

func invalidJSON(reason error, message string, cause error) *Error {
	return &Error{Kind: KindInvalidJSON, Reason: reason, Message: message, cause: cause}
}

func validationFailed(reason error, message string, cause error) *Error {
	return &Error{Kind: KindValidationFailed, Reason: reason, Message: message, cause: cause}
}

func unsupportedFormat(value string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Value: value, Message: value}
}

func unsupportedVersion(value string) *Error {
	return &Error{Kind: KindUnsupportedVersion, Value: value, Message: value}
}

// KindOf returns the kind of a parser error, 0 for any other error.
func KindOf(err error) Kind {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	return 0
}
