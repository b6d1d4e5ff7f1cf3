// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = "1.2.3"
	if got := UserAgent(); got != "stream-go-client-1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "stream-go-client-1.2.3")
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q, want prefix %q", full, Info())
	}
	if !strings.Contains(full, "Go: ") {
		t.Errorf("Full() = %q, missing Go version", full)
	}
}
