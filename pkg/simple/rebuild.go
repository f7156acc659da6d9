// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package simple

import (
	"crypto"
	_ "crypto/md5"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"slices"

	"github.com/go-git/go-billy/v5/util"
	"github.com/google/simpleindex/internal/hashext"
	"github.com/pkg/errors"
)

// Rebuild discards SimpleDir and regenerates it from the canonical source tree.
//
// Packages appear in ascending order of their source directory path. Within a
// package, archives appear in directory listing order.
func (idx *Index) Rebuild() error {
	log.Printf("- Creating Simple index at %s", path.Join(SimpleDir, IndexFile))
	if err := util.RemoveAll(idx.fs, SimpleDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "removing %s", SimpleDir)
	}
	if err := idx.fs.MkdirAll(SimpleDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", SimpleDir)
	}
	dirs, err := idx.packageDirs()
	if err != nil {
		return err
	}
	// A name can occur under more than one bucket; such directories share a page.
	var names []string
	pages := make(map[string]*packagePage)
	for _, dir := range dirs {
		name := path.Base(dir)
		page, ok := pages[name]
		if !ok {
			if err := idx.fs.MkdirAll(path.Join(SimpleDir, name), 0755); err != nil {
				return errors.Wrapf(err, "creating page directory for %s", name)
			}
			page = &packagePage{Name: name}
			pages[name] = page
			names = append(names, name)
		}
		links, err := idx.links(dir)
		if err != nil {
			return err
		}
		page.Files = append(page.Files, links...)
	}
	for _, name := range names {
		if err := idx.writePage(path.Join(SimpleDir, name, IndexFile), func(w io.Writer) error {
			return renderPackage(w, *pages[name])
		}); err != nil {
			return errors.Wrapf(err, "writing page for %s", name)
		}
	}
	if err := idx.writePage(path.Join(SimpleDir, IndexFile), func(w io.Writer) error {
		return renderRoot(w, names)
	}); err != nil {
		return errors.Wrap(err, "writing root index")
	}
	return nil
}

// packageDirs returns the sorted, de-duplicated parent directories of all
// archives beneath SourceDir.
func (idx *Index) packageDirs() ([]string, error) {
	if _, err := idx.fs.Stat(SourceDir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	seen := make(map[string]bool)
	var dirs []string
	err := util.Walk(idx.fs, SourceDir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !idx.archives.Match(p) {
			return nil
		}
		if dir := path.Dir(p); !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", SourceDir)
	}
	slices.Sort(dirs)
	return dirs, nil
}

// links returns an anchor for each archive directly inside dir.
func (idx *Index) links(dir string) ([]fileLink, error) {
	infos, err := idx.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var links []fileLink
	for _, fi := range infos {
		if fi.IsDir() || !idx.archives.Match(fi.Name()) {
			continue
		}
		p := path.Join(dir, fi.Name())
		sum, err := idx.md5(p)
		if err != nil {
			return nil, err
		}
		links = append(links, fileLink{
			Name: fi.Name(),
			Href: path.Join("../..", p),
			MD5:  sum,
		})
	}
	return links, nil
}

func (idx *Index) md5(p string) (string, error) {
	f, err := idx.fs.Open(p)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", p)
	}
	defer f.Close()
	sum, err := hashext.HexDigest(crypto.MD5, f)
	return sum, errors.Wrapf(err, "hashing %s", p)
}

func (idx *Index) writePage(p string, render func(io.Writer) error) error {
	f, err := idx.fs.Create(p)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
