// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package dir2pi

import (
	"context"
	"flag"

	"github.com/google/simpleindex/internal/config"
	"github.com/google/simpleindex/internal/textwrap"
	"github.com/google/simpleindex/pkg/act"
	"github.com/google/simpleindex/pkg/act/cli"
	"github.com/google/simpleindex/pkg/simple"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the dir2pi command.
type Config struct {
	ConfigPath string
	Dir        string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("package directory is required")
	}
	return nil
}

// Deps holds dependencies for the command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{}, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) != 1 {
		return cli.Usagef("expected exactly 1 argument: package directory")
	}
	cfg.Dir = args[0]
	return nil
}

// Handler organizes the archives in the package directory and rebuilds its index.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	archives, err := settings.ArchiveMatcher()
	if err != nil {
		return nil, err
	}
	if _, err := simple.Build(cfg.Dir, archives); err != nil {
		return nil, err
	}
	return &act.NoOutput{}, nil
}

// Command creates a new dir2pi command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "dir2pi [--config=FILE] PACKAGE_DIR",
		Short: "Build a simple package index over a directory of archives",
		Long: textwrap.Block(`
			Creates the directory PACKAGE_DIR/simple/ and populates it with the
			directory structure required to use with pip's --index-url. Archives
			found directly in PACKAGE_DIR are moved to PACKAGE_DIR/packages/source/.

			Assumes that PACKAGE_DIR contains archives named
			'package-name-version.ext' (ex 'foo-2.1.tar.gz' or
			'foo-bar-1.3rc1.bz2').

			This makes the most sense if PACKAGE_DIR is somewhere inside a
			webserver's htdocs directory.

			For example:

			    $ ls index/
			    foo-1.2.tar.gz
			    $ dir2pi index/
			    $ find index/ -type f
			    index/packages/source/F/foo/foo-1.2.tar.gz
			    index/simple/index.html
			    index/simple/foo/index.html
		`),
		Args: cli.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			parseArgs,
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.ConfigPath, "config", "", "path to a YAML or TOML configuration file")
	return set
}
