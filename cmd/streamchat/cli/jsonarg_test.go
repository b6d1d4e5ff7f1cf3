// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseJSONArg(t *testing.T) {
	t.Run("inline with comments", func(t *testing.T) {
		var target map[string]any
		value := `{
			// only messaging channels
			"type": "messaging",
			"members": {"$in": ["alice",]},
		}`
		if err := ParseJSONArg("filter", value, &target); err != nil {
			t.Fatalf("ParseJSONArg: %v", err)
		}
		if target["type"] != "messaging" {
			t.Errorf("type = %v", target["type"])
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sort.jsonc")
		if err := os.WriteFile(path, []byte(`[{"field": "created_at", "direction": -1}] /* newest */`), 0o600); err != nil {
			t.Fatal(err)
		}
		var target []map[string]any
		if err := ParseJSONArg("sort", "@"+path, &target); err != nil {
			t.Fatalf("ParseJSONArg: %v", err)
		}
		if len(target) != 1 || target[0]["field"] != "created_at" {
			t.Errorf("target = %v", target)
		}
	})

	t.Run("empty leaves target", func(t *testing.T) {
		target := map[string]any{"kept": true}
		if err := ParseJSONArg("data", "", &target); err != nil {
			t.Fatal(err)
		}
		if target["kept"] != true {
			t.Error("target was modified")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		var target map[string]any
		err := ParseJSONArg("filter", "{not json", &target)
		var toolErr *ToolError
		if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
			t.Fatalf("error = %v, want validation ToolError", err)
		}
		if !strings.Contains(err.Error(), "--filter") {
			t.Errorf("error %q does not name the flag", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var target map[string]any
		if err := ParseJSONArg("data", "@"+filepath.Join(t.TempDir(), "absent"), &target); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	params := JSONOutput{}

	done, err := params.EmitJSON(&output, []string{"a"})
	if done || err != nil || output.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v, %q", done, err, output.String())
	}

	params.OutputJSON = true
	var empty []string
	done, err = params.EmitJSON(&output, empty)
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", output.String())
	}
}
