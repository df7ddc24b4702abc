// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0", "0.1.0-alpha.1").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	// Installed via "go install module@version".
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" && len(setting.Value) >= 7 {
				Commit = setting.Value[:7]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// Details is the version information in structured form.
type Details struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Get returns the current version details.
func Get() Details {
	return Details{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
	}
}

// Info returns formatted version information.
func Info() string {
	d := Get()
	return fmt.Sprintf("formrequest version %s (commit: %s, built: %s, go: %s)",
		d.Version, d.Commit, d.Date, d.Go)
}

// Short returns just the version string.
func Short() string {
	return Version
}
