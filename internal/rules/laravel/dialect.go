// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package laravel spells validation rules the way Laravel's validator
// expects them.
package laravel

import (
	"strings"

	"github.com/dacolabs/formrequest/internal/rules"
	"github.com/dacolabs/formrequest/internal/schema"
)

const (
	hostnamePattern = `^(?=.{1,253}$)[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`
	base64Pattern   = `^[A-Za-z0-9+\/]*={0,2}$`
)

// Dialect is the Laravel rule dialect.
type Dialect struct{}

var _ rules.Dialect = Dialect{}

// New returns the Laravel dialect.
func New() Dialect {
	return Dialect{}
}

func (Dialect) Name() string {
	return "laravel"
}

func (Dialect) Presence(required bool) string {
	if required {
		return "required"
	}
	return "nullable"
}

// TypeToken maps objects to "array", since Laravel validates associative
// input as arrays. Untyped schemas get no type token.
func (Dialect) TypeToken(kind schema.Kind) string {
	switch kind {
	case schema.KindString:
		return "string"
	case schema.KindInteger:
		return "integer"
	case schema.KindNumber:
		return "numeric"
	case schema.KindBoolean:
		return "boolean"
	case schema.KindArray, schema.KindObject:
		return "array"
	default:
		return ""
	}
}

func (d Dialect) FormatTokens(format string) []string {
	switch format {
	case "email":
		return []string{"email"}
	case "url", "uri":
		return []string{"url"}
	case "uuid":
		return []string{"uuid"}
	case "date":
		return []string{"date_format:Y-m-d"}
	case "date-time":
		return []string{"date"}
	case "time":
		return []string{"date_format:H:i:s"}
	case "ipv4":
		return []string{"ipv4"}
	case "ipv6":
		return []string{"ipv6"}
	case "hostname":
		return []string{d.Pattern(hostnamePattern)}
	case "byte":
		return []string{d.Pattern(base64Pattern)}
	case "binary":
		return []string{"file"}
	default:
		return nil
	}
}

func (Dialect) LowerBound(value string, exclusive bool) string {
	if exclusive {
		return "gt:" + value
	}
	return "min:" + value
}

func (Dialect) UpperBound(value string, exclusive bool) string {
	if exclusive {
		return "lt:" + value
	}
	return "max:" + value
}

func (Dialect) MultipleOf(value string) string {
	return "multiple_of:" + value
}

func (Dialect) Pattern(pattern string) string {
	return "regex:/" + pattern + "/"
}

// OneOf joins values with commas. Values containing commas are not escaped.
func (Dialect) OneOf(values []string) string {
	return "in:" + strings.Join(values, ",")
}

func (Dialect) Distinct() string {
	return "distinct"
}
