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

// Package parser turns CycloneDX JSON documents (spec versions 1.4 to 1.6)
// into a bom.Document.
//
// Every entry point runs the same pipeline: path checks (files only), file
// checks, JSON decoding, envelope validation and mapping. All steps fail
// fast except mapping, which reports every field error at once.
package parser

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/l3montree-dev/sbomparser/bom"
	"github.com/l3montree-dev/sbomparser/mapping"
	"github.com/pkg/errors"
)

const (
	DefaultMaxFileSize int64 = 50 * 1024 * 1024
	DefaultMaxDepth          = 64
)

type Parser interface {
	ParseFile(path string) (*bom.Document, error)
	ParseJSON(content []byte) (*bom.Document, error)
	ParseValue(data any) (*bom.Document, error)
	IsValidFile(path string) bool
	IsValidJSON(content []byte) bool
	IsValidValue(data any) bool
	SupportedFormats() []string
}

// CycloneDXParser holds configuration only and is safe for concurrent use.
type CycloneDXParser struct {
	maxFileSize       int64
	maxDepth          int
	allowedExtensions []string
	mapper            mapping.Mapper
	logger            *slog.Logger
}

var _ Parser = (*CycloneDXParser)(nil)

type Option func(*CycloneDXParser)

func WithMaxFileSize(bytes int64) Option {
	return func(p *CycloneDXParser) {
		p.maxFileSize = bytes
	}
}

func WithMaxDepth(depth int) Option {
	return func(p *CycloneDXParser) {
		p.maxDepth = depth
	}
}

func WithAllowedExtensions(extensions ...string) Option {
	return func(p *CycloneDXParser) {
		p.allowedExtensions = extensions
	}
}

// WithMapper replaces the mapping engine, mostly useful in tests.
func WithMapper(mapper mapping.Mapper) Option {
	return func(p *CycloneDXParser) {
		p.mapper = mapper
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *CycloneDXParser) {
		p.logger = logger
	}
}

func New(opts ...Option) *CycloneDXParser {
	p := &CycloneDXParser{
		maxFileSize:       DefaultMaxFileSize,
		maxDepth:          DefaultMaxDepth,
		allowedExtensions: DefaultAllowedExtensions,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.mapper == nil {
		p.mapper = NewDocumentMapper()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

func (p *CycloneDXParser) SupportedFormats() []string {
	return []string{"json"}
}

func (p *CycloneDXParser) ParseFile(path string) (*bom.Document, error) {
	if err := ValidatePath(path, p.allowedExtensions...); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, validationFailed(ErrFileNotFound, "File not found: "+path, err)
		}
		return nil, validationFailed(ErrFileUnreadable, "File not readable: "+path, err)
	}
	if info.IsDir() {
		return nil, validationFailed(ErrFileUnreadable, "File not readable: "+path, nil)
	}
	if info.Size() > p.maxFileSize {
		return nil, validationFailed(ErrFileTooLarge,
			fmt.Sprintf("File too large: %d bytes (maximum: %d bytes)", info.Size(), p.maxFileSize), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, validationFailed(ErrFileUnreadable, "File not readable: "+path, err)
	}
	defer f.Close()

	content, err := p.readLimited(f)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("read sbom file", "path", path, "bytes", len(content))
	return p.ParseJSON(content)
}

// ParseReader reads at most the maximum file size from r and parses it.
func (p *CycloneDXParser) ParseReader(r io.Reader) (*bom.Document, error) {
	content, err := p.readLimited(r)
	if err != nil {
		return nil, err
	}
	return p.ParseJSON(content)
}

func (p *CycloneDXParser) readLimited(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, p.maxFileSize+1))
	if err != nil {
		return nil, validationFailed(ErrFileUnreadable, "Could not read file: "+err.Error(), err)
	}
	if int64(len(content)) > p.maxFileSize {
		return nil, validationFailed(ErrFileTooLarge,
			fmt.Sprintf("File too large: more than %d bytes", p.maxFileSize), nil)
	}
	return content, nil
}

func (p *CycloneDXParser) ParseJSON(content []byte) (*bom.Document, error) {
	data, err := decodeJSON(content, p.maxDepth)
	if err != nil {
		return nil, err
	}

	switch data.(type) {
	case map[string]any, []any:
	default:
		return nil, validationFailed(ErrStructureInvalid, "Decoded JSON is not an array/object", nil)
	}

	return p.parseValue(data)
}

// ParseValue parses an already decoded document, as produced by
// json.Unmarshal into an any. The value is held to the same nesting bound
// as JSON text.
func (p *CycloneDXParser) ParseValue(data any) (*bom.Document, error) {
	if err := checkValueDepth(data, p.maxDepth); err != nil {
		return nil, err
	}
	return p.parseValue(data)
}

func (p *CycloneDXParser) parseValue(data any) (*bom.Document, error) {
	if err := ValidateEnvelope(data); err != nil {
		return nil, err
	}
	return p.mapDocument(data)
}

func (p *CycloneDXParser) mapDocument(data any) (*bom.Document, error) {
	doc := &bom.Document{}
	if err := p.mapper.Map(data, doc); err != nil {
		var mappingErr *mapping.Error
		if errors.As(err, &mappingErr) {
			return nil, validationFailed(ErrMappingFailed, renderMappingReport(mappingErr), mappingErr)
		}
		return nil, validationFailed(ErrMappingFailed, err.Error(), err)
	}

	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		p.logger.Debug("parsed sbom", "specVersion", doc.SpecVersion, "components", doc.ComponentCount())
	}
	return doc, nil
}

func (p *CycloneDXParser) IsValidFile(path string) bool {
	_, err := p.ParseFile(path)
	return err == nil
}

func (p *CycloneDXParser) IsValidJSON(content []byte) bool {
	_, err := p.ParseJSON(content)
	return err == nil
}

func (p *CycloneDXParser) IsValidValue(data any) bool {
	_, err := p.ParseValue(data)
	return err == nil
}
