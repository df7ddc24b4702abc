// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides per-invocation context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/dacolabs/formrequest/internal/config"
	"github.com/dacolabs/formrequest/internal/logging"
)

// ErrInvalidConfig indicates the configuration could not be loaded.
var ErrInvalidConfig = errors.New("invalid configuration")

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options select where configuration comes from and how verbose logging is.
type Options struct {
	// ConfigPath is an explicit config file; empty looks for formrequest.yaml.
	ConfigPath string
	Verbosity  int
	Quiet      bool
	// LogWriter receives diagnostics. Defaults to os.Stderr.
	LogWriter io.Writer
}

// Context holds the resolved configuration and logger of one invocation.
type Context struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Load resolves the configuration, builds the logger and returns a new
// context.Context carrying both.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	w := opts.LogWriter
	if w == nil {
		w = os.Stderr
	}
	logger := logging.New(w, opts.Verbosity, opts.Quiet)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	logger.Debug().
		Str("output", cfg.Output).
		Str("namespace", cfg.Namespace).
		Int("concurrency", cfg.Concurrency).
		Msg("configuration loaded")

	sess := &Context{
		Config: cfg,
		Logger: logger,
	}
	ctx = logger.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, sess), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sess, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sess
	}
	return nil
}
