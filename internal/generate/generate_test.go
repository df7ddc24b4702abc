// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/formrequest/internal/emit"
	"github.com/dacolabs/formrequest/internal/oas"
)

func loadSpec(t *testing.T, dir, file string) *oas.Spec {
	t.Helper()
	doc, err := oas.NewLoader(os.DirFS(dir)).LoadFile(file, oas.FormatAuto)
	require.NoError(t, err)
	spec, err := oas.Parse(doc)
	require.NoError(t, err)
	return spec
}

func petstore(t *testing.T) *oas.Spec {
	return loadSpec(t, "../oas/testdata", "petstore.yaml")
}

func defaultOptions(dir string) Options {
	return Options{
		OutputDir:   dir,
		Namespace:   emit.DefaultNamespace,
		Concurrency: 2,
	}
}

func classNames(r *Report) []string {
	names := make([]string, len(r.Results))
	for i, res := range r.Results {
		names[i] = res.ClassName
	}
	return names
}

func TestCandidates(t *testing.T) {
	spec := petstore(t)

	ids := func(eps []*oas.Endpoint) []string {
		out := make([]string, len(eps))
		for i, ep := range eps {
			out[i] = ep.ID()
		}
		return out
	}

	assert.Equal(t, []string{"createUser", "update_user", "POST /users/{userId}/avatar-images"}, ids(Candidates(spec, false)))
	// deleteUser only inherits the path-level id, which still counts as input
	assert.Equal(t, []string{"listUsers", "createUser", "update_user", "deleteUser", "POST /users/{userId}/avatar-images"}, ids(Candidates(spec, true)))
}

func TestRun_WritesClasses(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Requests")

	report := Run(context.Background(), petstore(t), defaultOptions(dir))
	require.NoError(t, report.Err())

	assert.Equal(t, []string{"CreateUserRequest", "UpdateUserRequest", "PostUsersByUserIdAvatarImagesRequest"}, classNames(report))
	assert.Equal(t, 3, report.Succeeded())
	assert.Equal(t, 0, report.Skipped())
	assert.Equal(t, 0, report.Failed())

	data, err := os.ReadFile(filepath.Join(dir, "CreateUserRequest.php"))
	require.NoError(t, err)
	src := string(data)
	assert.Contains(t, src, "namespace App\\Http\\Requests;")
	assert.Contains(t, src, " * POST /users\n * Create a user\n")
	assert.Contains(t, src, `
            'name' => 'required|string|min:2|max:100',
            'email' => 'required|string|email',
            'age' => 'nullable|integer|min:0|max:120',
            'address' => 'nullable|array',
            'address.street' => 'required|string',
            'address.zip' => 'nullable|string|regex:/^[0-9]{5}$/',
            'tags' => 'nullable|array',
            'tags.*' => 'nullable|string',
`)

	data, err = os.ReadFile(filepath.Join(dir, "PostUsersByUserIdAvatarImagesRequest.php"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "'file' => 'required|string|file',")

	data, err = os.ReadFile(filepath.Join(dir, "UpdateUserRequest.php"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "'nickname' => 'nullable|string',")
	assert.NotContains(t, string(data), "'id'")
}

func TestRun_IncludeParameters(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.IncludeParameters = true
	opts.DryRun = true

	report := Run(context.Background(), petstore(t), opts)
	require.NoError(t, report.Err())
	require.Len(t, report.Results, 5)

	list := report.Results[0]
	assert.Equal(t, "ListUsersRequest", list.ClassName)
	assert.Equal(t, []string{"page", "limit"}, list.Rules.Paths())
	rule, _ := list.Rules.Get("limit")
	assert.Equal(t, "nullable|integer|max:100", rule.Rule())

	update := report.Results[2]
	rule, ok := update.Rules.Get("id")
	require.True(t, ok)
	assert.Equal(t, "required|integer", rule.Rule())

	remove := report.Results[3]
	assert.Equal(t, "DeleteUserRequest", remove.ClassName)
	assert.Equal(t, []string{"id"}, remove.Rules.Paths())
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	opts := defaultOptions(dir)
	opts.DryRun = true
	opts.Force = true

	report := Run(context.Background(), petstore(t), opts)
	require.NoError(t, report.Err())
	assert.Equal(t, 3, report.Skipped())
	assert.Equal(t, 0, report.Succeeded())
	for _, res := range report.Results {
		assert.NotEmpty(t, res.Write.Source)
	}

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ExistingFilesFailPerEndpoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UpdateUserRequest.php"), []byte("<?php // hand written"), 0o600))

	report := Run(context.Background(), petstore(t), defaultOptions(dir))
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.ErrorIs(t, report.Results[1].Err, emit.ErrFileExists)
	assert.EqualError(t, report.Err(), "failed to generate 1 request class(es)")

	data, err := os.ReadFile(filepath.Join(dir, "UpdateUserRequest.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php // hand written", string(data))

	opts := defaultOptions(dir)
	opts.Force = true
	report = Run(context.Background(), petstore(t), opts)
	require.NoError(t, report.Err())
	assert.Equal(t, 3, report.Succeeded())
}

func TestRun_Only(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.Only = []string{"update_user"}

	report := Run(context.Background(), petstore(t), opts)
	require.NoError(t, report.Err())
	assert.Equal(t, []string{"UpdateUserRequest"}, classNames(report))
}

func TestRun_CollisionsAndBrokenRefs(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	report := Run(ctx, loadSpec(t, "testdata", "collide.yaml"), defaultOptions(t.TempDir()))

	require.Len(t, report.Results, 3)
	assert.NoError(t, report.Results[0].Err)

	assert.ErrorIs(t, report.Results[1].Err, ErrDuplicateClass)
	assert.Contains(t, report.Results[1].Err.Error(), "CreateThingRequest")
	assert.Contains(t, report.Results[1].Err.Error(), "createThing")

	assert.ErrorIs(t, report.Results[2].Err, oas.ErrReferenceNotFound)
	assert.Equal(t, 2, report.Failed())

	assert.Contains(t, logs.String(), "duplicate route signature")
	assert.Contains(t, logs.String(), "POST /a/{param1}/b/{param2}")
}

func TestRun_InvalidOperationID(t *testing.T) {
	dir := t.TempDir()
	report := Run(context.Background(), loadSpec(t, "testdata", "invalid-operation.yaml"), defaultOptions(dir))

	require.Len(t, report.Results, 2)
	assert.ErrorIs(t, report.Results[0].Err, oas.ErrInvalidEndpoint)
	assert.Contains(t, report.Results[0].Err.Error(), "create-widget")

	require.NoError(t, report.Results[1].Err)
	assert.Equal(t, 1, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	_, err := os.Stat(filepath.Join(dir, "CreateGadgetRequest.php"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "CreateWidgetRequest.php"))
	assert.True(t, os.IsNotExist(err))
}

func TestMapEndpoint_InvalidOperationID(t *testing.T) {
	spec := loadSpec(t, "testdata", "invalid-operation.yaml")
	ep, ok := spec.Endpoint("create-widget")
	require.True(t, ok)

	_, _, err := MapEndpoint(spec, ep, Options{})
	assert.ErrorIs(t, err, oas.ErrInvalidEndpoint)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Run(ctx, petstore(t), defaultOptions(t.TempDir()))
	assert.Equal(t, 3, report.Failed())
	for _, res := range report.Results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestBuildClass_Summary(t *testing.T) {
	spec := petstore(t)
	ep, ok := spec.Endpoint("deleteUser")
	require.True(t, ok)
	assert.Equal(t, "DELETE /users/{id}\n\n@deprecated", summary(ep))

	ep, _ = spec.Endpoint("createUser")
	class, err := BuildClass(spec, ep, Options{Namespace: "App"})
	require.NoError(t, err)
	assert.Equal(t, "POST /users\nCreate a user", class.Options.Summary)
	assert.Equal(t, "App", class.Namespace)
}
