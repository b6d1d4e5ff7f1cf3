// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the streamchat CLI configuration file.
//
// Configuration is loaded from a single file specified by either the
// STREAMCHAT_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search.
//
// The file holds named profiles, one per application or environment:
//
//	default_profile: production
//	profiles:
//	  production:
//	    api_key: k3y
//	    api_secret_file: ${HOME}/.config/streamchat/production.secret
//	    timeout: 10s
//	  local:
//	    api_key: ${STREAM_KEY:-dev}
//	    api_secret_env: STREAM_SECRET
//	    base_url: http://localhost:3030
//
// ${VAR} and ${VAR:-default} patterns in string fields are expanded
// from the environment after loading. API secrets are never stored in
// the file itself: a profile names a file (or "-" for stdin) or an
// environment variable, and [Profile.OpenSecret] reads it into
// protected memory.
package config
