// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import "errors"

var (
	// ErrFileNotFound indicates the spec file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse indicates the document is not valid JSON or YAML.
	ErrParse = errors.New("failed to parse document")

	// ErrMissingSection indicates a required top-level section is absent.
	ErrMissingSection = errors.New("missing required section")

	// ErrReferenceNotFound indicates a $ref pointer that does not resolve.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrCircularReference indicates a $ref chain that refers back to itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrUnsupportedReference indicates a $ref outside the current document.
	ErrUnsupportedReference = errors.New("unsupported reference")

	// ErrInvalidEndpoint indicates an operation that cannot produce a class.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)
