// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"strings"
	"unicode"
)

// ToPascalCase converts snake_case, kebab-case, camelCase or space separated
// words to PascalCase. Letters after the first of each word are kept as is,
// so camelCase input only gains an upper-case first letter.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}
	return sb.String()
}
