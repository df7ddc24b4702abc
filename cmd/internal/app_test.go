// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package internal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ConfigFromEnv(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	getenv := func(key string) string {
		if key == ConfigEnv {
			return missing
		}
		return ""
	}

	err := Run(context.Background(), []string{"version"}, getenv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestRun_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Run(context.Background(), []string{"version", "-q"}, func(string) string { return "" })
	require.NoError(t, err)
}
