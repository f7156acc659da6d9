// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefault(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "pip2pi.yaml",
			content: `
pip:
  command: [python3, -m, pip, download]
  args: [--no-binary, ":all:"]
s3:
  region: eu-west-1
archives: [.tar.gz, .whl]
`,
		},
		{
			name: "toml",
			file: "pip2pi.toml",
			content: `
archives = [".tar.gz", ".whl"]

[pip]
command = ["python3", "-m", "pip", "download"]
args = ["--no-binary", ":all:"]

[s3]
region = "eu-west-1"
`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tc.file, tc.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := Default()
			want.Pip.Command = []string{"python3", "-m", "pip", "download"}
			want.Pip.Args = []string{"--no-binary", ":all:"}
			want.S3.Region = "eu-west-1"
			want.Archives = []string{".tar.gz", ".whl"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "pip2pi.yaml", "s3:\n  region: eu-west-1\n")
	t.Setenv("PIP2PI_S3_REGION", "ap-south-1")
	t.Setenv("PIP2PI_PIP_COMMAND", "pip3,download")
	t.Setenv("PIP2PI_GCS_ENDPOINT", "http://localhost:4443/storage/v1/")
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.S3.Region != "ap-south-1" {
		t.Errorf("S3.Region = %q, want %q", got.S3.Region, "ap-south-1")
	}
	if diff := cmp.Diff([]string{"pip3", "download"}, got.Pip.Command); diff != "" {
		t.Errorf("Pip.Command mismatch (-want +got):\n%s", diff)
	}
	if got.GCS.Endpoint != "http://localhost:4443/storage/v1/" {
		t.Errorf("GCS.Endpoint = %q", got.GCS.Endpoint)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"unknown format", func(t *testing.T) string { return writeConfig(t, "pip2pi.ini", "x=1") }},
		{"malformed yaml", func(t *testing.T) string { return writeConfig(t, "pip2pi.yaml", "pip: [") }},
		{"empty pip command", func(t *testing.T) string { return writeConfig(t, "pip2pi.yaml", "pip:\n  command: []\n") }},
		{"bad archive extension", func(t *testing.T) string { return writeConfig(t, "pip2pi.yaml", "archives: [tgz]\n") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path(t)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestArchiveMatcher(t *testing.T) {
	cfg := Default()
	cfg.Archives = []string{".tar.gz"}
	m, err := cfg.ArchiveMatcher()
	if err != nil {
		t.Fatalf("ArchiveMatcher() error = %v", err)
	}
	if !m.Match("foo-1.0.tar.gz") || m.Match("foo-1.0.zip") {
		t.Errorf("ArchiveMatcher() = %v, does not honor Archives", m)
	}
}
