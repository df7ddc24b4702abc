// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prompts provides interactive terminal prompts for CLI commands.
package prompts

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dacolabs/formrequest/internal/emit"
)

// Theme returns the shared huh theme used across all CLI forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form.Base = theme.Form.Base.MarginTop(1)
	theme.Group.Base = theme.Group.Base.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// Status marks a result line.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) mark() string {
	switch s {
	case StatusSkipped:
		return skippedStyle.Render("-")
	case StatusFailed:
		return failureStyle.Render("✗")
	default:
		return successStyle.Render("✓")
	}
}

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label  string
	Value  string
	Status Status
}

// PrintResult prints a styled summary with status marks and gray labels.
func PrintResult(w io.Writer, fields []ResultField, successMsg string) {
	_, _ = fmt.Fprintln(w)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", f.Status.mark(), labelStyle.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		_, _ = fmt.Fprintln(w, successStyle.Render("\n"+successMsg))
	}
}

func namespaceValidator(s string) error {
	if s == "" {
		return errors.New("namespace is required")
	}
	if !emit.IsNamespace(s) {
		return errors.New(`must be PascalCase segments separated by \, e.g. App\Http\Requests`)
	}
	return nil
}

func requiredValidator(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
