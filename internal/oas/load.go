// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package oas loads OpenAPI documents into an ordered raw tree, resolves
// $ref pointers and parses operations into endpoint descriptors.
package oas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format is the serialization of a spec document.
type Format string

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = ""
	// FormatJSON decodes JSON documents.
	FormatJSON Format = "json"
	// FormatYAML decodes YAML documents.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unsupported format %q (supported: json, yaml)", s)
	}
}

// DetectFormat picks the format from a file extension. Unknown extensions
// are read as YAML, which also accepts JSON input.
func DetectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Document is a decoded spec document.
type Document struct {
	Root   *Object
	Raw    []byte
	Format Format
	Path   string
}

// Loader loads spec documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile reads and decodes filePath. A missing file reports
// ErrFileNotFound; undecodable content reports ErrParse.
func (l *Loader) LoadFile(filePath string, format Format) (*Document, error) {
	data, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	if format == FormatAuto {
		format = DetectFormat(filePath)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	doc.Path = filePath
	return doc, nil
}

// Open loads a spec from a path on the local filesystem.
func Open(filePath string, format Format) (*Document, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if format == FormatAuto {
		format = DetectFormat(abs)
	}
	doc, err := NewLoader(os.DirFS(filepath.Dir(abs))).LoadFile(filepath.Base(abs), format)
	if err != nil {
		return nil, err
	}
	doc.Path = filePath
	return doc, nil
}

// Decode decodes raw bytes in the given format. FormatAuto is read as YAML.
func Decode(data []byte, format Format) (*Document, error) {
	var (
		v   any
		err error
	)
	switch format {
	case FormatJSON:
		v, err = decodeJSON(data)
	case FormatYAML, FormatAuto:
		format = FormatYAML
		v, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %v", ErrParse, format, err)
	}

	root, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w as %s: top-level value must be a mapping", ErrParse, format)
	}
	return &Document{Root: root, Raw: data, Format: format}, nil
}
