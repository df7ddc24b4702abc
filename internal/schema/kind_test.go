// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "any", KindAny.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name         string
		types        []string
		wantKind     Kind
		wantNullable bool
	}{
		{"single", []string{"integer"}, KindInteger, false},
		{"nullable union", []string{"string", "null"}, KindString, true},
		{"null first", []string{"null", "array"}, KindArray, true},
		{"only null", []string{"null"}, KindAny, true},
		{"first wins", []string{"number", "string"}, KindNumber, false},
		{"unknown ignored", []string{"file", "boolean"}, KindBoolean, false},
		{"empty", nil, KindAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, nullable := NormalizeType(tt.types)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantNullable, nullable)
		})
	}
}

func TestKind_IsNumeric(t *testing.T) {
	assert.True(t, KindInteger.IsNumeric())
	assert.True(t, KindNumber.IsNumeric())
	assert.False(t, KindString.IsNumeric())
	assert.False(t, KindArray.IsNumeric())
}
