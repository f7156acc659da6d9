// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/simpleindex/pkg/dist"
)

func TestPipArgv(t *testing.T) {
	tests := []struct {
		name  string
		pip   Pip
		specs []string
		want  []string
	}{
		{
			name:  "default command",
			specs: []string{"foo==1.2", "-r", "requirements.txt"},
			want:  []string{"pip", "download", "--dest", "/out", "foo==1.2", "-r", "requirements.txt"},
		},
		{
			name:  "custom command and args",
			pip:   Pip{Command: []string{"python3", "-m", "pip", "download"}, Args: []string{"--no-binary", ":all:"}},
			specs: []string{"bar"},
			want:  []string{"python3", "-m", "pip", "download", "--dest", "/out", "--no-binary", ":all:", "bar"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.pip.argv("/out", tc.specs)); diff != "" {
				t.Errorf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipArgvDoesNotAliasCommand(t *testing.T) {
	cmd := make([]string, 2, 8)
	copy(cmd, []string{"pip", "download"})
	p := Pip{Command: cmd}
	p.argv("/a", []string{"x"})
	p.argv("/b", []string{"y"})
	if diff := cmp.Diff([]string{"pip", "download"}, p.Command); diff != "" {
		t.Errorf("Command modified (-want +got):\n%s", diff)
	}
}

// fakePip stands in for pip: it touches "<spec>-1.0.tar.gz" in the --dest directory.
var fakePip = []string{"sh", "-c", `dest="$2"; shift 2; for s in "$@"; do touch "$dest/$s-1.0.tar.gz"; done`, "pip"}

func TestPipFetch(t *testing.T) {
	dir := t.TempDir()
	p := &Pip{Command: fakePip}
	if err := p.Fetch(context.Background(), dir, []string{"foo", "bar"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	for _, name := range []string{"foo-1.0.tar.gz", "bar-1.0.tar.gz"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	n, err := CountArchives(dir, dist.DefaultMatcher)
	if err != nil {
		t.Fatalf("CountArchives() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountArchives() = %d, want 2", n)
	}
}

func TestPipFetchFailure(t *testing.T) {
	p := &Pip{Command: []string{"sh", "-c", "exit 3", "pip"}}
	if err := p.Fetch(context.Background(), t.TempDir(), []string{"foo"}); err == nil {
		t.Error("Fetch() succeeded, want error")
	}
}

func TestPipFetchNoSpecs(t *testing.T) {
	p := &Pip{Command: fakePip}
	if err := p.Fetch(context.Background(), t.TempDir(), nil); err == nil {
		t.Error("Fetch() succeeded without specifiers, want error")
	}
}

func TestCountArchivesIgnoresOthers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a-1.0.tar.gz", "b-1.0-py3-none-any.whl", "README", "log.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "c-1.0.tar.gz"), 0755); err != nil {
		t.Fatal(err)
	}
	n, err := CountArchives(dir, dist.DefaultMatcher)
	if err != nil {
		t.Fatalf("CountArchives() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountArchives() = %d, want 2", n)
	}
}
