// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"channel", "channel", 0},
		{"chanel", "channel", 1},
		{"upsert", "upserts", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("x", pflag.ContinueOnError)
	flagSet.String("filter", "", "")
	flagSet.String("sort", "", "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--fitler={}"}, "--filter"},
		{[]string{"--sort", "x", "--srot"}, "--sort"},
		{[]string{"--completely-different"}, ""},
		{[]string{"--", "--fitler"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
