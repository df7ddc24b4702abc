// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package logging builds the CLI's diagnostic logger.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Level maps the -v count and -q flag to a log level:
// quiet logs errors only, 0 warnings, 1 info, 2 debug, 3 or more trace.
func Level(verbosity int, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New creates a human-readable logger writing to w.
func New(w io.Writer, verbosity int, quiet bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}).With().Timestamp().Logger().Level(Level(verbosity, quiet))
}

// FromContext returns the logger stored on ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
