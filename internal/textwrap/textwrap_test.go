// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package textwrap

import "testing"

func TestDedent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "shared tabs",
			input: "\t\tdir2pi DIR\n\t\t\tflags\n",
			want:  "dir2pi DIR\n\tflags\n",
		},
		{
			name:  "no shared indentation",
			input: "usage\n  detail\n",
			want:  "usage\n  detail\n",
		},
		{
			name:  "mismatched tabs and spaces",
			input: "\t  a\n\t b\n",
			want:  " a\nb\n",
		},
		{
			name:  "blank lines ignored and emptied",
			input: "    a\n  \n\n    b",
			want:  "a\n\n\nb",
		},
		{
			name:  "whitespace only",
			input: "  \n\t",
			want:  "\n",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dedent(tc.input); got != tc.want {
				t.Errorf("Dedent(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestBlock(t *testing.T) {
	input := `
		Build a simple index.

		  Example: dir2pi ./packages
	`
	want := "Build a simple index.\n\n  Example: dir2pi ./packages"
	if got := Block(input); got != want {
		t.Errorf("Block() = %q, want %q", got, want)
	}
}
