// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/simpleindex/internal/uri"
	"github.com/google/simpleindex/pkg/dist"
	"github.com/pkg/errors"
)

// fakeFetcher writes empty files named after each spec.
type fakeFetcher struct {
	err    error
	gotDir string
}

func (f *fakeFetcher) Fetch(ctx context.Context, dir string, specs []string) error {
	f.gotDir = dir
	if f.err != nil {
		return f.err
	}
	for _, s := range specs {
		if err := os.WriteFile(filepath.Join(dir, s), nil, 0644); err != nil {
			return err
		}
	}
	return nil
}

// fakePublisher records the files present in the directory it is handed.
type fakePublisher struct {
	err   error
	dir   string
	files []string
}

func (p *fakePublisher) Publish(ctx context.Context, dir string) error {
	p.dir = dir
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			p.files = append(p.files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return p.err
}

func TestRunLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	f := &fakeFetcher{}
	err := Run(context.Background(), Options{
		Destination: uri.Destination{Kind: uri.Local, Path: dir},
		Specs:       []string{"foo-1.0.tar.gz", "bar-2.0.zip"},
		Fetcher:     f,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.gotDir != dir {
		t.Errorf("fetched into %q, want %q", f.gotDir, dir)
	}
	for _, p := range []string{
		"packages/source/F/foo/foo-1.0.tar.gz",
		"packages/source/B/bar/bar-2.0.zip",
		"simple/index.html",
		"simple/foo/index.html",
		"simple/bar/index.html",
	} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
}

func TestRunRemote(t *testing.T) {
	pub := &fakePublisher{}
	err := Run(context.Background(), Options{
		Destination: uri.Destination{Kind: uri.Rsync, Path: "host:/srv"},
		Specs:       []string{"foo-1.0.tar.gz"},
		Fetcher:     &fakeFetcher{},
		Publisher:   pub,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(pub.dir), WorkingDirPattern) {
		t.Errorf("published from %q, want a %s* directory", pub.dir, WorkingDirPattern)
	}
	want := []string{
		"packages/source/F/foo/foo-1.0.tar.gz",
		"simple/foo/index.html",
		"simple/index.html",
	}
	if diff := cmp.Diff(want, pub.files); diff != "" {
		t.Errorf("published files mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(pub.dir); !os.IsNotExist(err) {
		t.Errorf("working directory %s not removed: %v", pub.dir, err)
	}
}

func TestRunStageErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		specs   []string
		fetcher *fakeFetcher
		pub     *fakePublisher
		want    Stage
	}{
		{
			name:    "fetch",
			specs:   []string{"foo-1.0.tar.gz"},
			fetcher: &fakeFetcher{err: boom},
			pub:     &fakePublisher{},
			want:    StageFetch,
		},
		{
			name:    "index",
			specs:   []string{"noversion.tar.gz"},
			fetcher: &fakeFetcher{},
			pub:     &fakePublisher{},
			want:    StageIndex,
		},
		{
			name:    "publish",
			specs:   []string{"foo-1.0.tar.gz"},
			fetcher: &fakeFetcher{},
			pub:     &fakePublisher{err: boom},
			want:    StagePublish,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Run(context.Background(), Options{
				Destination: uri.Destination{Kind: uri.S3, Bucket: "b"},
				Specs:       tc.specs,
				Fetcher:     tc.fetcher,
				Publisher:   tc.pub,
			})
			var se *StageError
			if !errors.As(err, &se) {
				t.Fatalf("Run() error = %v, want *StageError", err)
			}
			if se.Stage != tc.want {
				t.Errorf("Stage = %q, want %q", se.Stage, tc.want)
			}
			if tc.want != StagePublish && tc.pub.dir != "" {
				t.Errorf("publisher ran after %s failure", tc.want)
			}
			if _, err := os.Stat(tc.fetcher.gotDir); !os.IsNotExist(err) {
				t.Errorf("working directory %s not removed", tc.fetcher.gotDir)
			}
		})
	}
}

func TestRunIndexErrorIsParseError(t *testing.T) {
	err := Run(context.Background(), Options{
		Destination: uri.Destination{Kind: uri.Local, Path: t.TempDir()},
		Specs:       []string{"noversion.tar.gz"},
		Fetcher:     &fakeFetcher{},
	})
	var perr *dist.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Run() error = %v, want *dist.ParseError", err)
	}
	if perr.Filename != "noversion.tar.gz" {
		t.Errorf("Filename = %q, want %q", perr.Filename, "noversion.tar.gz")
	}
}
