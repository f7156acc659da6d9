// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"io"
	"io/fs"
	"log"
	"mime"
	"path"
	"path/filepath"

	"github.com/cheggaaa/pb"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

// Uploader writes a single publicly readable object.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
}

// ObjectStore publishes every file of the index as an object under Prefix.
type ObjectStore struct {
	Uploader Uploader
	Prefix   string
	// Label names the destination in progress output.
	Label    string
	Progress io.Writer
}

var _ Publisher = &ObjectStore{}

// Publish uploads the contents of dir.
func (o *ObjectStore) Publish(ctx context.Context, dir string) error {
	return o.PublishFS(ctx, osfs.New(dir))
}

// PublishFS uploads every file in fsys. The first failed upload stops the
// operation and is returned.
func (o *ObjectStore) PublishFS(ctx context.Context, fsys billy.Filesystem) error {
	log.Printf("- Uploading to %s...", o.Label)
	var files []string
	err := util.Walk(fsys, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "listing index files")
	}
	bar := pb.New(len(files))
	bar.Output = o.Progress
	if bar.Output == nil {
		bar.Output = io.Discard
	}
	bar.Start()
	defer bar.Finish()
	for _, rel := range files {
		key := path.Join(o.Prefix, rel)
		log.Printf("  %s", key)
		if err := o.upload(ctx, fsys, rel, key); err != nil {
			return errors.Wrapf(err, "uploading %s", key)
		}
		bar.Increment()
	}
	return nil
}

func (o *ObjectStore) upload(ctx context.Context, fsys billy.Filesystem, rel, key string) error {
	f, err := fsys.Open(rel)
	if err != nil {
		return err
	}
	defer f.Close()
	return o.Uploader.Upload(ctx, key, contentType(rel), f)
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
