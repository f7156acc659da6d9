// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package simple

import (
	"path"
	"strings"
	"unicode/utf8"
)

const (
	SourceDir = "packages/source" // Canonical tree of archives, accumulated across runs.
	SimpleDir = "simple"          // Generated index pages, rebuilt from SourceDir on every run.
	IndexFile = "index.html"      // Page name within SimpleDir and each package directory.
)

// Bucket returns the first character of name, upper-cased.
func Bucket(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToUpper(name[:size])
	}
	return strings.ToUpper(string(r))
}

// SourcePath returns the canonical location of an archive belonging to the package name.
func SourcePath(name, filename string) string {
	return path.Join(SourceDir, Bucket(name), name, filename)
}
