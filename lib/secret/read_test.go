// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"testing"
)

func readKey(t *testing.T, key *Key) string {
	t.Helper()
	var value string
	if err := key.With(func(material []byte) error {
		value = string(material)
		return nil
	}); err != nil {
		t.Fatalf("With failed: %v", err)
	}
	return value
}

func TestReadFromPath(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		if err := os.WriteFile(path, []byte("  my-secret\n"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		key, err := ReadFromPath(path)
		if err != nil {
			t.Fatalf("ReadFromPath failed: %v", err)
		}
		defer key.Close()

		if got := readKey(t, key); got != "my-secret" {
			t.Errorf("key = %q, want %q", got, "my-secret")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadFromPath(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		if err := os.WriteFile(path, []byte(" \n\t"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if _, err := ReadFromPath(path); err == nil {
			t.Fatal("expected error for whitespace-only file")
		}
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STREAMCHAT_TEST_SECRET", "env-secret\n")

	key, err := FromEnv("STREAMCHAT_TEST_SECRET")
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	defer key.Close()

	if got := readKey(t, key); got != "env-secret" {
		t.Errorf("key = %q, want %q", got, "env-secret")
	}

	if _, err := FromEnv("STREAMCHAT_TEST_SECRET_UNSET"); err == nil {
		t.Fatal("expected error for unset variable")
	}
}
