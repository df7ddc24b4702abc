// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app", "Http", "Requests")
	c := sampleClass(t)

	res := Writer{}.Write(dir, c)
	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.True(t, res.Written)
	assert.False(t, res.Skipped)
	assert.Equal(t, filepath.Join(dir, "CreateUserRequest.php"), res.Path)
	assert.Equal(t, "Created "+res.Path, res.Message)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Source, data)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriter_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CreateUserRequest.php")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o600))

	res := Writer{}.Write(dir, sampleClass(t))
	assert.ErrorIs(t, res.Err, ErrFileExists)
	assert.False(t, res.OK())
	assert.False(t, res.Written)
	assert.Contains(t, res.Message, "use --force to overwrite")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestWriter_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CreateUserRequest.php")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer than nothing"), 0o600))

	res := Writer{Force: true}.Write(dir, sampleClass(t))
	require.NoError(t, res.Err)
	assert.True(t, res.Written)
	assert.Equal(t, "Overwrote "+path, res.Message)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Source, data)
}

func TestWriter_DryRunTouchesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	for _, force := range []bool{false, true} {
		res := Writer{DryRun: true, Force: force}.Write(dir, sampleClass(t))
		require.NoError(t, res.Err)
		assert.True(t, res.Skipped)
		assert.False(t, res.Written)
		assert.NotEmpty(t, res.Source)
		assert.Equal(t, "Would write "+res.Path, res.Message)
	}

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_UnwritableDirectory(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	res := Writer{}.Write(filepath.Join(blocker, "sub"), sampleClass(t))
	require.Error(t, res.Err)
	assert.False(t, res.Written)
	assert.Contains(t, res.Message, "failed to create output directory")
}
