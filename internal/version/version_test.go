// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	d := Get()
	assert.Equal(t, Version, d.Version)
	assert.Equal(t, runtime.Version(), d.Go)
	assert.Contains(t, Info(), "formrequest version "+Version)
	assert.Equal(t, Version, Short())
}
