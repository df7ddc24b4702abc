// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(args ...string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().CountP("verbose", "v", "")
	cmd.Flags().BoolP("quiet", "q", false, "")
	_ = cmd.Flags().Parse(args)
	cmd.SetContext(context.Background())
	return cmd
}

func TestFromCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newCommand("-vv")

	// Before PreRunLoad
	assert.Nil(t, FromCommand(cmd))

	// After PreRunLoad
	require.NoError(t, PreRunLoad(cmd, nil))
	sess := FromCommand(cmd)
	require.NotNil(t, sess)
	assert.Equal(t, `App\Http\Requests`, sess.Config.Namespace)
	assert.Equal(t, zerolog.DebugLevel, sess.Logger.GetLevel())
	assert.Equal(t, zerolog.DebugLevel, zerolog.Ctx(cmd.Context()).GetLevel())
}

func TestRequireFromCommand(t *testing.T) {
	tests := []struct {
		name          string
		config        string // config file content, empty means none
		loadFirst     bool   // whether to call PreRunLoad before RequireFromCommand
		wantErr       bool
		wantNamespace string
	}{
		{
			name:      "not loaded",
			loadFirst: false,
			wantErr:   true,
		},
		{
			name:          "loaded with defaults",
			loadFirst:     true,
			wantNamespace: `App\Http\Requests`,
		},
		{
			name:          "loaded from config file",
			config:        "namespace: Acme\\Http\\Requests\n",
			loadFirst:     true,
			wantNamespace: `Acme\Http\Requests`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)

			var args []string
			if tt.config != "" {
				path := filepath.Join(dir, "custom.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o600))
				args = append(args, "--config", path)
			}
			cmd := newCommand(args...)

			if tt.loadFirst {
				require.NoError(t, PreRunLoad(cmd, nil))
			}

			sess, err := RequireFromCommand(cmd)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, sess.Config.Namespace)
		})
	}
}

func TestPreRunLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "formrequest.yaml"), []byte("concurrency: 0\n"), 0o600))

	err := PreRunLoad(newCommand(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = PreRunLoad(newCommand("--config", filepath.Join(dir, "missing.yaml")), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_QuietLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx, err := Load(context.Background(), Options{Quiet: true, Verbosity: 3, LogWriter: &buf})
	require.NoError(t, err)

	log := zerolog.Ctx(ctx)
	log.Warn().Msg("suppressed")
	log.Error().Msg("shown")
	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "shown")
}
