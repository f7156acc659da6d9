// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package fetch downloads distribution archives by invoking pip.
package fetch

import (
	"context"
	"log"
	"os/exec"
	"slices"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/simpleindex/pkg/dist"
	"github.com/pkg/errors"
)

// Fetcher downloads the packages named by specs, and their dependencies, as
// archives placed directly inside dir.
type Fetcher interface {
	Fetch(ctx context.Context, dir string, specs []string) error
}

// DefaultPipCommand is the pip invocation used when none is configured.
var DefaultPipCommand = []string{"pip", "download"}

// Pip is a Fetcher backed by the pip command line.
type Pip struct {
	// Command is the pip invocation up to and excluding its options.
	Command []string
	// Args are extra options inserted before the package specifiers.
	Args []string
}

var _ Fetcher = &Pip{}

func (p *Pip) argv(dir string, specs []string) []string {
	cmd := p.Command
	if len(cmd) == 0 {
		cmd = DefaultPipCommand
	}
	argv := slices.Clone(cmd)
	argv = append(argv, "--dest", dir)
	argv = append(argv, p.Args...)
	return append(argv, specs...)
}

// Fetch runs pip to download specs into dir.
//
// Specifiers are passed through verbatim so version pins and "-r file"
// requirement references work as they do with pip.
func (p *Pip) Fetch(ctx context.Context, dir string, specs []string) error {
	if len(specs) == 0 {
		return errors.New("no package specifiers provided")
	}
	log.Println("- Downloading pip packages")
	argv := p.argv(dir, specs)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = log.Default().Writer()
	cmd.Stderr = log.Default().Writer()
	log.Printf("Executing: %s", cmd.String())
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", argv[0])
	}
	return nil
}

// CountArchives returns the number of archives directly inside dir.
func CountArchives(dir string, archives dist.Matcher) (int, error) {
	entries, err := osfs.New(dir).ReadDir(".")
	if err != nil {
		return 0, errors.Wrapf(err, "listing %s", dir)
	}
	var n int
	for _, e := range entries {
		if !e.IsDir() && archives.Match(e.Name()) {
			n++
		}
	}
	return n, nil
}
