// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/formrequest/internal/rules"
)

func oneRule() *rules.Table {
	t := rules.NewTable()
	t.Set("name", "required", "string")
	return t
}

func TestNewClass(t *testing.T) {
	tests := []struct {
		name      string
		className string
		namespace string
		table     *rules.Table
		opts      Options
		wantErr   error
		wantMsg   string
	}{
		{
			name:      "valid",
			className: "StoreUserRequest",
			namespace: `App\Http\Requests`,
			table:     oneRule(),
		},
		{
			name:      "underscore class",
			className: "_Legacy_1",
			namespace: "App",
			table:     oneRule(),
		},
		{
			name:      "class starting with digit",
			className: "1Request",
			namespace: `App\Http\Requests`,
			table:     oneRule(),
			wantErr:   ErrInvalidClassName,
			wantMsg:   "Invalid class name: 1Request",
		},
		{
			name:      "class with dash",
			className: "Store-User",
			namespace: `App\Http\Requests`,
			table:     oneRule(),
			wantErr:   ErrInvalidClassName,
			wantMsg:   "Invalid class name: Store-User",
		},
		{
			name:      "lowercase namespace",
			className: "StoreUserRequest",
			namespace: `app\Http`,
			table:     oneRule(),
			wantErr:   ErrInvalidNamespace,
			wantMsg:   `Invalid namespace: app\Http`,
		},
		{
			name:      "trailing separator",
			className: "StoreUserRequest",
			namespace: `App\Http\`,
			table:     oneRule(),
			wantErr:   ErrInvalidNamespace,
		},
		{
			name:      "empty namespace",
			className: "StoreUserRequest",
			table:     oneRule(),
			wantErr:   ErrInvalidNamespace,
		},
		{
			name:      "nil rules",
			className: "StoreUserRequest",
			namespace: `App\Http\Requests`,
			wantErr:   ErrEmptyRules,
			wantMsg:   "Validation rules cannot be empty",
		},
		{
			name:      "empty rules",
			className: "StoreUserRequest",
			namespace: `App\Http\Requests`,
			table:     rules.NewTable(),
			wantErr:   ErrEmptyRules,
		},
		{
			name:      "bad base class",
			className: "StoreUserRequest",
			namespace: `App\Http\Requests`,
			table:     oneRule(),
			opts:      Options{BaseClass: `App\Http\9Base`},
			wantErr:   ErrInvalidBaseClass,
		},
		{
			name:      "class name checked before rules",
			className: "",
			namespace: `App\Http\Requests`,
			wantErr:   ErrInvalidClassName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClass(tt.className, tt.namespace, tt.table, nil, tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.className, c.Name)
		})
	}
}

func TestNewClass_Defaults(t *testing.T) {
	c, err := NewClass("StoreUserRequest", `App\Http\Requests`, oneRule(), nil, Options{Authorize: "  "})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseClass, c.Options.BaseClass)
	assert.Equal(t, "true", c.Options.Authorize)
	assert.Equal(t, "StoreUserRequest.php", c.FileName())
	assert.Equal(t, `App\Http\Requests\StoreUserRequest`, c.FQCN())

	c, err = NewClass("StoreUserRequest", "App", oneRule(), nil, Options{BaseClass: `\App\Http\Requests\BaseRequest`})
	require.NoError(t, err)
	assert.Equal(t, `App\Http\Requests\BaseRequest`, c.Options.BaseClass)
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, IsClassName("A"))
	assert.True(t, IsClassName("a_b9"))
	assert.False(t, IsClassName(""))
	assert.False(t, IsClassName("A B"))

	assert.True(t, IsNamespace("App"))
	assert.True(t, IsNamespace(`App\Http\Requests\V2`))
	assert.False(t, IsNamespace("App.Http"))
	assert.False(t, IsNamespace(`\App`))
}
