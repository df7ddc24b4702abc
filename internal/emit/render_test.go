// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/formrequest/internal/rules"
	"github.com/dacolabs/formrequest/internal/schema"
)

func sampleClass(t *testing.T) *Class {
	t.Helper()
	table := rules.NewTable()
	table.Set("name", "required", "string", "min:2")
	table.Set("code", "required", "string", "regex:/^(a|b)$/")
	table.Set("o'k", "nullable")

	c, err := NewClass("CreateUserRequest", `App\Http\Requests`, table, nil, Options{
		Summary: "POST /users\nCreate a user",
		Messages: map[string]string{
			"name.required": "Name is required",
			"email.email":   "It's invalid",
		},
	})
	require.NoError(t, err)
	return c
}

func TestRender_Golden(t *testing.T) {
	got, err := sampleClass(t).Render()
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("testdata", "CreateUserRequest.php"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRender_Deterministic(t *testing.T) {
	c := sampleClass(t)
	c.Options.Attributes = map[string]string{"z": "Zed", "a": "Ay", "m": "Em"}

	first, err := c.Render()
	require.NoError(t, err)
	for range 5 {
		again, err := c.Render()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
	assert.Contains(t, string(first), "            'a' => 'Ay',\n            'm' => 'Em',\n            'z' => 'Zed',\n")
}

func TestRender_Options(t *testing.T) {
	table := rules.NewTable()
	table.Set("pin", "required", "string", `regex:/^\d{4}$/`)
	source := schema.Object(schema.WithDescription("Payload for */ pins"))

	c, err := NewClass("PinRequest", "App", table, source, Options{
		BaseClass: `App\Http\Requests\ApiRequest`,
		Authorize: "$this->user() !== null",
	})
	require.NoError(t, err)

	out, err := c.Render()
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, "use App\\Http\\Requests\\ApiRequest;\n")
	assert.Contains(t, src, "class PinRequest extends ApiRequest\n")
	assert.Contains(t, src, "return $this->user() !== null;")
	assert.Contains(t, src, `'pin' => 'required|string|regex:/^\\d{4}$/',`)
	assert.Contains(t, src, " * Payload for * / pins\n")
	assert.NotContains(t, src, "messages()")
	assert.NotContains(t, src, "attributes()")
}

func TestRender_AliasesCollidingBaseClass(t *testing.T) {
	c, err := NewClass("FormRequest", `App\Http\Requests`, oneRule(), nil, Options{})
	require.NoError(t, err)

	out, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), "use Illuminate\\Foundation\\Http\\FormRequest as BaseFormRequest;\n")
	assert.Contains(t, string(out), "class FormRequest extends BaseFormRequest\n")
	assert.Contains(t, string(out), " * FormRequest form request.\n")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, quote("plain"))
	assert.Equal(t, `'it\'s'`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}
