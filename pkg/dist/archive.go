// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package dist

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// DefaultExtensions are the archive suffixes placed into the index.
//
// ".gz" and ".bz2" cover the ".tar.gz" and ".tar.bz2" sdists.
var DefaultExtensions = []string{".gz", ".bz2", ".tgz", ".zip", ".egg", ".whl"}

// Matcher reports whether a file name is a recognized archive.
type Matcher struct {
	pattern string
}

// DefaultMatcher matches DefaultExtensions.
var DefaultMatcher = Matcher{pattern: patternFor(DefaultExtensions)}

// NewMatcher builds a Matcher for the given extensions, e.g. ".tar.gz".
func NewMatcher(exts ...string) (Matcher, error) {
	if len(exts) == 0 {
		return Matcher{}, errors.New("no archive extensions provided")
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
			return Matcher{}, errors.Errorf("invalid archive extension: %q", ext)
		}
		if strings.ContainsAny(ext, "/{},*?[]\\") {
			return Matcher{}, errors.Errorf("invalid archive extension: %q", ext)
		}
	}
	p := patternFor(exts)
	if !doublestar.ValidatePattern(p) {
		return Matcher{}, errors.Errorf("invalid archive pattern: %q", p)
	}
	return Matcher{pattern: p}, nil
}

func patternFor(exts []string) string {
	trimmed := make([]string, len(exts))
	for i, ext := range exts {
		trimmed[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return "*.{" + strings.Join(trimmed, ",") + "}"
}

// Match reports whether the base name of name carries an archive extension.
// Matching is case-insensitive.
func (m Matcher) Match(name string) bool {
	if m.pattern == "" {
		m = DefaultMatcher
	}
	ok, _ := doublestar.Match(m.pattern, strings.ToLower(path.Base(name)))
	return ok
}

// String returns the glob used for matching.
func (m Matcher) String() string {
	if m.pattern == "" {
		return DefaultMatcher.pattern
	}
	return m.pattern
}

// IsArchive reports whether name matches DefaultMatcher.
func IsArchive(name string) bool {
	return DefaultMatcher.Match(name)
}
