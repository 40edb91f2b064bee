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
		{"", "abc", 3},
		{"render", "render", 0},
		{"rendr", "render", 1},
		{"oredr", "order", 2},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "order"}, {Name: "render"}, {Name: "view"}, {Name: "version"}}
	tests := []struct {
		input string
		want  string
	}{
		{"veiw", "view"},
		{"rendor", "render"},
		{"versoin", "version"},
		{"xyzzyplugh", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("precision", "", "")
	flagSet.String("mode", "", "")
	flagSet.Bool("no-sort", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--precison=exact"}, "--precision"},
		{[]string{"--mode", "x", "--nosort"}, "--no-sort"},
		{[]string{"--", "--precison"}, ""},
		{[]string{"--completely-unrelated"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
