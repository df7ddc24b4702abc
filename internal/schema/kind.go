// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema models resolved OpenAPI schemas as an immutable, strictly
// typed tree consumed by the rule mapper.
package schema

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the primary type of a schema node.
type Kind int

const (
	KindAny     Kind = iota // any
	KindString              // string
	KindInteger             // integer
	KindNumber              // number
	KindBoolean             // boolean
	KindObject              // object
	KindArray               // array
)

// ParseKind maps an OpenAPI type name to a Kind.
// "null" and unknown names report false.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "string":
		return KindString, true
	case "integer":
		return KindInteger, true
	case "number":
		return KindNumber, true
	case "boolean":
		return KindBoolean, true
	case "object":
		return KindObject, true
	case "array":
		return KindArray, true
	default:
		return KindAny, false
	}
}

// IsNumeric reports whether range facets apply to values of this kind.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindNumber
}

// NormalizeType collapses an OpenAPI 3.1 type union into one primary kind and
// a nullable flag. The first non-null recognized member wins; a union made
// only of "null" yields KindAny.
func NormalizeType(types []string) (Kind, bool) {
	kind := KindAny
	found := false
	nullable := false
	for _, t := range types {
		if t == "null" {
			nullable = true
			continue
		}
		if found {
			continue
		}
		if k, ok := ParseKind(t); ok {
			kind = k
			found = true
		}
	}
	return kind, nullable
}
