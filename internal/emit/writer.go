// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileExists indicates the target file exists and overwriting is off.
var ErrFileExists = errors.New("file already exists")

// Writer writes rendered classes into a directory.
type Writer struct {
	// Force overwrites existing files.
	Force bool
	// DryRun renders without touching the filesystem.
	DryRun bool
}

// Result reports the outcome of writing one class.
type Result struct {
	Path    string
	Written bool
	Skipped bool
	Err     error
	Message string
	Source  []byte
}

// OK reports whether the class was written or skipped without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Write renders c and writes it to dir/<Name>.php. Failures are reported in
// the result, never returned, so a batch can continue past them.
func (w Writer) Write(dir string, c *Class) Result {
	path := filepath.Join(dir, c.FileName())
	res := Result{Path: path}

	src, err := c.Render()
	if err != nil {
		return res.fail(err)
	}
	res.Source = src

	if w.DryRun {
		res.Skipped = true
		res.Message = fmt.Sprintf("Would write %s", path)
		return res
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return res.fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.Force {
		flags |= os.O_EXCL
	}
	existed := w.Force && fileExists(path)

	f, err := os.OpenFile(path, flags, 0o600) //nolint:gosec // path is built from the output flag
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, path)
		}
		return res.fail(err)
	}
	if _, err := f.Write(src); err != nil {
		_ = f.Close()
		return res.fail(err)
	}
	if err := f.Close(); err != nil {
		return res.fail(err)
	}

	res.Written = true
	if existed {
		res.Message = fmt.Sprintf("Overwrote %s", path)
	} else {
		res.Message = fmt.Sprintf("Created %s", path)
	}
	return res
}

func (r Result) fail(err error) Result {
	r.Err = err
	r.Message = err.Error()
	return r
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
