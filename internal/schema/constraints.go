// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "slices"

// Constraints holds the validation facets attached to a schema node.
// A nil pointer means the facet is absent.
type Constraints struct {
	// String facets. Pattern is stored verbatim.
	MinLength *int
	MaxLength *int
	Pattern   string
	Enum      []any

	// Numeric facets. Exclusive bounds are always numeric here; OpenAPI 3.0
	// boolean flags are normalized during extraction.
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64

	// Array facets.
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether no facet is set.
func (c Constraints) IsEmpty() bool {
	return c.MinLength == nil && c.MaxLength == nil && c.Pattern == "" && len(c.Enum) == 0 &&
		c.Minimum == nil && c.Maximum == nil &&
		c.ExclusiveMinimum == nil && c.ExclusiveMaximum == nil && c.MultipleOf == nil &&
		c.MinItems == nil && c.MaxItems == nil && !c.UniqueItems
}

// ComplexityScore counts set facets plus the number of enum values.
// Diagnostics only.
func (c Constraints) ComplexityScore() int {
	score := 0
	for _, set := range []bool{
		c.MinLength != nil, c.MaxLength != nil, c.Pattern != "",
		c.Minimum != nil, c.Maximum != nil,
		c.ExclusiveMinimum != nil, c.ExclusiveMaximum != nil, c.MultipleOf != nil,
		c.MinItems != nil, c.MaxItems != nil, c.UniqueItems,
	} {
		if set {
			score++
		}
	}
	if len(c.Enum) > 0 {
		score += 1 + len(c.Enum)
	}
	return score
}

// Merge returns a copy of c where every facet set on other replaces c's.
func (c Constraints) Merge(other Constraints) Constraints {
	out := c
	out.Enum = slices.Clone(c.Enum)

	if other.MinLength != nil {
		out.MinLength = Ptr(*other.MinLength)
	}
	if other.MaxLength != nil {
		out.MaxLength = Ptr(*other.MaxLength)
	}
	if other.Pattern != "" {
		out.Pattern = other.Pattern
	}
	if len(other.Enum) > 0 {
		out.Enum = slices.Clone(other.Enum)
	}
	if other.Minimum != nil {
		out.Minimum = Ptr(*other.Minimum)
	}
	if other.Maximum != nil {
		out.Maximum = Ptr(*other.Maximum)
	}
	if other.ExclusiveMinimum != nil {
		out.ExclusiveMinimum = Ptr(*other.ExclusiveMinimum)
	}
	if other.ExclusiveMaximum != nil {
		out.ExclusiveMaximum = Ptr(*other.ExclusiveMaximum)
	}
	if other.MultipleOf != nil {
		out.MultipleOf = Ptr(*other.MultipleOf)
	}
	if other.MinItems != nil {
		out.MinItems = Ptr(*other.MinItems)
	}
	if other.MaxItems != nil {
		out.MaxItems = Ptr(*other.MaxItems)
	}
	if other.UniqueItems {
		out.UniqueItems = true
	}
	return out
}

// LowerBound returns the effective lower bound and whether it is exclusive.
// An exclusive bound wins over an inclusive one.
func (c Constraints) LowerBound() (*float64, bool) {
	if c.ExclusiveMinimum != nil {
		return c.ExclusiveMinimum, true
	}
	return c.Minimum, false
}

// UpperBound returns the effective upper bound and whether it is exclusive.
func (c Constraints) UpperBound() (*float64, bool) {
	if c.ExclusiveMaximum != nil {
		return c.ExclusiveMaximum, true
	}
	return c.Maximum, false
}
