// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package textwrap formats indented string literals for display.
package textwrap

import "strings"

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

// Dedent removes the indentation shared by all non-blank lines.
//
// Only tabs and spaces count as indentation. Whitespace-only lines are
// emptied and do not affect the shared indentation.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	var margin string
	first := true
	for _, line := range lines {
		if strings.TrimLeftFunc(line, isBlank) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeftFunc(line, isBlank))]
		if first {
			margin, first = indent, false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	for i, line := range lines {
		if strings.TrimLeftFunc(line, isBlank) == "" {
			lines[i] = ""
		} else {
			lines[i] = strings.TrimPrefix(line, margin)
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// Block dedents text and strips its leading and trailing blank lines, which
// suits help text written as an indented raw string literal.
func Block(text string) string {
	return strings.Trim(Dedent(text), "\n")
}
