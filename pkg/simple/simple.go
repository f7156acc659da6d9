// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package simple maintains a static PEP 503 "simple" index over a directory
// of Python distribution archives.
//
// The directory holds three things:
//
//	<root>/*.tar.gz                             loose archives awaiting organization
//	<root>/packages/source/<L>/<name>/<file>    the canonical tree, durable across runs
//	<root>/simple/[<name>/]index.html           pages derived from the canonical tree
//
// Concurrent use against the same root is unsupported.
package simple

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/simpleindex/pkg/dist"
	"github.com/pkg/errors"
)

// ErrMissingDirectory is returned when the index root does not exist.
var ErrMissingDirectory = errors.New("no such directory")

// Index operates on a package directory.
type Index struct {
	fs       billy.Filesystem
	archives dist.Matcher
}

// New returns an Index rooted at fs which treats files accepted by archives as distributions.
func New(fs billy.Filesystem, archives dist.Matcher) *Index {
	return &Index{fs: fs, archives: archives}
}

// Open returns an Index for the existing directory dir.
func Open(dir string, archives dist.Matcher) (*Index, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, errors.Wrapf(ErrMissingDirectory, "%q", dir)
	}
	return New(osfs.New(dir), archives), nil
}

// Build organizes loose archives in dir and regenerates its index.
// It returns the number of archives moved into the canonical tree.
func Build(dir string, archives dist.Matcher) (int, error) {
	idx, err := Open(dir, archives)
	if err != nil {
		return 0, err
	}
	moved, err := idx.Organize()
	if err != nil {
		return moved, errors.Wrap(err, "organizing packages")
	}
	if err := idx.Rebuild(); err != nil {
		return moved, errors.Wrap(err, "rebuilding index")
	}
	return moved, nil
}
