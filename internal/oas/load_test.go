// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadFile(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format Format
	}{
		{"YAML", "petstore.yaml", FormatAuto},
		{"JSON", "petstore.json", FormatAuto},
		{"JSON explicit", "petstore.json", FormatJSON},
		{"JSON read as YAML", "petstore.json", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewLoader(os.DirFS("testdata")).LoadFile(tt.file, tt.format)
			require.NoError(t, err)

			assert.Equal(t, "3.0.3", doc.Root.String("openapi"))
			assert.Equal(t, tt.file, doc.Path)

			user := doc.Root.Object("components").Object("schemas").Object("User")
			require.NotNil(t, user)
			assert.Equal(t, []string{"name", "email", "age", "address", "tags"}, user.Object("properties").Keys())
			assert.Equal(t, []string{"name", "email"}, user.Strings("required"))

			age := user.Object("properties").Object("age")
			maximum, ok := age.Number("maximum")
			require.True(t, ok)
			assert.Equal(t, 120.0, maximum)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))

	_, err := loader.LoadFile("does-not-exist.yaml", FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NotErrorIs(t, err, ErrParse)

	_, err = loader.LoadFile("broken.yaml", FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrFileNotFound)

	_, err = loader.LoadFile("broken.json", FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "as json")
}

func TestOpen(t *testing.T) {
	doc, err := Open(filepath.Join("testdata", "petstore.yaml"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format)

	_, err = Open(filepath.Join(t.TempDir(), "missing.json"), FormatAuto)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr bool
	}{
		{"json object", `{"b": 1, "a": [true, null, 1.5, "x"]}`, FormatJSON, false},
		{"yaml object", "b: 1\na: [true, null, 1.5, x]\n", FormatYAML, false},
		{"json top-level list", `[1, 2]`, FormatJSON, true},
		{"json trailing data", `{"a": 1} {"b": 2}`, FormatJSON, true},
		{"yaml scalar", "just a string", FormatYAML, true},
		{"yaml empty", "", FormatYAML, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data), tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"b", "a"}, doc.Root.Keys())

			b, ok := doc.Root.Get("b")
			require.True(t, ok)
			assert.Equal(t, int64(1), b)
			assert.Equal(t, []any{true, nil, 1.5, "x"}, doc.Root.List("a"))
		})
	}
}

func TestDecode_YAMLAliasesAndMerge(t *testing.T) {
	data := `
base: &base
  type: string
  maxLength: 5
name:
  <<: *base
  minLength: 1
copy: *base
`
	doc, err := Decode([]byte(data), FormatYAML)
	require.NoError(t, err)

	name := doc.Root.Object("name")
	require.NotNil(t, name)
	assert.Equal(t, "string", name.String("type"))
	maxLength, ok := name.Int("maxLength")
	require.True(t, ok)
	assert.Equal(t, 5, maxLength)
	assert.Equal(t, "string", doc.Root.Object("copy").String("type"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, DetectFormat("spec.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("spec.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("spec"))
}
