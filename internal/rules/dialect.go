// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rules

import "github.com/dacolabs/formrequest/internal/schema"

// Dialect converts rule kinds into a target framework's token strings.
// The mapper decides which rules apply and in which order; a dialect only
// decides how each one is spelled. An empty token is omitted.
type Dialect interface {
	// Name identifies the target framework, e.g. "laravel".
	Name() string

	// Presence returns the leading token for a required or nullable field.
	Presence(required bool) string

	// TypeToken maps a schema kind to its type token.
	// Object schemas may map to whatever the framework uses for maps.
	TypeToken(kind schema.Kind) string

	// FormatTokens returns the tokens that follow the type token for a
	// string format. Unknown formats return nil.
	FormatTokens(format string) []string

	// LowerBound returns the token for a minimum length, value or item count.
	LowerBound(value string, exclusive bool) string

	// UpperBound returns the token for a maximum length, value or item count.
	UpperBound(value string, exclusive bool) string

	// MultipleOf returns the token for a numeric multiple constraint.
	MultipleOf(value string) string

	// Pattern returns the token for a regular expression, used verbatim.
	Pattern(pattern string) string

	// OneOf returns the token for an enumeration of allowed values.
	OneOf(values []string) string

	// Distinct returns the token for arrays with unique items.
	Distinct() string
}
