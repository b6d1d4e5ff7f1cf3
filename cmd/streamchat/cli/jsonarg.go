// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// ParseJSONArg decodes a flag value holding JSON into target. The value
// is either inline JSON or "@path" naming a file ("@-" for stdin).
// Comments and trailing commas are allowed. An empty value leaves
// target untouched.
func ParseJSONArg(name, value string, target any) error {
	if value == "" {
		return nil
	}

	data := []byte(value)
	if path, ok := strings.CutPrefix(value, "@"); ok {
		var err error
		if path == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return Validation("--%s: reading %s: %w", name, path, err)
		}
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), target); err != nil {
		return Validation("--%s: invalid JSON: %w", name, err)
	}
	return nil
}
