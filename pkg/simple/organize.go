// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package simple

import (
	"log"
	"os"
	"path"

	"github.com/google/simpleindex/pkg/dist"
	"github.com/pkg/errors"
)

// Organize moves every loose archive at the root of the index into the
// canonical source tree and returns the number of files moved.
//
// An existing file at the destination is replaced. A file name that cannot be
// parsed stops the operation; files moved before it stay moved.
func (idx *Index) Organize() (int, error) {
	log.Println("- Moving packages to Simple source structure")
	infos, err := idx.fs.ReadDir(".")
	if err != nil {
		return 0, errors.Wrap(err, "listing package directory")
	}
	var moved int
	for _, fi := range infos {
		if fi.IsDir() || !idx.archives.Match(fi.Name()) {
			continue
		}
		name, _, err := dist.Parse(fi.Name())
		if err != nil {
			var perr *dist.ParseError
			if errors.As(err, &perr) {
				perr.Dir = idx.fs.Root()
			}
			return moved, err
		}
		dest := SourcePath(name, fi.Name())
		if err := idx.fs.MkdirAll(path.Dir(dest), 0755); err != nil {
			return moved, errors.Wrapf(err, "creating %s", path.Dir(dest))
		}
		if err := idx.fs.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
			return moved, errors.Wrapf(err, "removing existing %s", dest)
		}
		if err := idx.fs.Rename(fi.Name(), dest); err != nil {
			return moved, errors.Wrapf(err, "moving %s", fi.Name())
		}
		moved++
	}
	return moved, nil
}
