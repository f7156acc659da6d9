// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package dist splits Python distribution archive file names into project
// name and version remainder.
package dist

import (
	"fmt"
	"path"
	re "regexp"
	"strings"
)

// ParseError indicates a file name that is not in "name-version.ext" form.
type ParseError struct {
	Filename string
	// Dir is the directory the file was found in, if known.
	Dir string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("unexpected file name: %q (not in 'pkg-name-version.xxx' format", e.Filename)
	if e.Dir != "" {
		msg += fmt.Sprintf("; found in directory: %q", e.Dir)
	}
	return msg + ")"
}

var unsafeRE = re.MustCompile(`[^A-Za-z0-9.]+`)

// SafeName replaces each run of characters other than ASCII letters, digits
// and '.' with a single '-'. Case is preserved.
func SafeName(s string) string {
	return unsafeRE.ReplaceAllString(s, "-")
}

// Parse splits an archive file name into its package name and remainder.
//
// Egg and wheel names carry the project name as their first dash-separated
// segment; the returned name is that segment in safe-name form and the
// remainder is the untouched rest of the file name. Every other name is split
// on its last '-' and the remainder is put in safe-name form.
func Parse(filename string) (name, remainder string, err error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".egg", ".whl":
		return parseBinary(filename)
	}
	i := strings.LastIndex(filename, "-")
	if i <= 0 || i == len(filename)-1 {
		return "", "", &ParseError{Filename: filename}
	}
	return filename[:i], SafeName(filename[i+1:]), nil
}

// parseBinary handles eggs and wheels, e.g.
// "python_ldap-2.3.9-py2.7-macosx-10.3-fat.egg" -> ("python-ldap", "2.3.9-py2.7-macosx-10.3-fat.egg").
func parseBinary(filename string) (string, string, error) {
	stem := strings.TrimSuffix(filename, path.Ext(filename))
	project, _, ok := strings.Cut(stem, "-")
	if !ok || project == "" {
		return "", "", &ParseError{Filename: filename}
	}
	return SafeName(project), filename[len(project)+1:], nil
}
