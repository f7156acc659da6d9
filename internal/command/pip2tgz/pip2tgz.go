// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package pip2tgz

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/simpleindex/internal/config"
	"github.com/google/simpleindex/internal/textwrap"
	"github.com/google/simpleindex/pkg/act"
	"github.com/google/simpleindex/pkg/act/cli"
	"github.com/google/simpleindex/pkg/fetch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the pip2tgz command.
type Config struct {
	ConfigPath string
	PipCommand string
	OutDir     string
	Specs      []string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.OutDir == "" {
		return errors.New("output directory is required")
	}
	if len(c.Specs) == 0 {
		return errors.New("at least one package is required")
	}
	return nil
}

// Deps holds dependencies for the command.
type Deps struct {
	IO         cli.IO
	NewFetcher func(config.Pip) fetch.Fetcher
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{NewFetcher: PipFetcher}, nil
}

// PipFetcher returns a Fetcher running the configured pip command.
func PipFetcher(cfg config.Pip) fetch.Fetcher {
	return &fetch.Pip{Command: cfg.Command, Args: cfg.Args}
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) < 2 {
		return cli.Usagef("expected an output directory and at least one package")
	}
	cfg.OutDir = args[0]
	cfg.Specs = args[1:]
	return nil
}

// LoadSettings reads the configuration file at path and applies a non-empty
// pipCommand override on top of it.
func LoadSettings(path, pipCommand string) (*config.Config, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	if pipCommand != "" {
		settings.Pip.Command = strings.Fields(pipCommand)
	}
	return settings, nil
}

// Handler downloads the requested packages and their dependencies into the output directory.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	settings, err := LoadSettings(cfg.ConfigPath, cfg.PipCommand)
	if err != nil {
		return nil, err
	}
	archives, err := settings.ArchiveMatcher()
	if err != nil {
		return nil, err
	}
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", cfg.OutDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", outDir)
	}
	if err := deps.NewFetcher(settings.Pip).Fetch(ctx, outDir, cfg.Specs); err != nil {
		return nil, errors.Wrap(err, "downloading packages")
	}
	n, err := fetch.CountArchives(outDir, archives)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(deps.IO.Out, "- %d packages downloaded\n", n)
	return &act.NoOutput{}, nil
}

// Command creates a new pip2tgz command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "pip2tgz [--config=FILE] [--pip-command=CMD] OUTPUT_DIRECTORY PACKAGE_NAME...",
		Short: "Download packages and their dependencies as archives",
		Long: textwrap.Block(`
			Where PACKAGE_NAMEs are any names accepted by pip (ex, 'foo',
			'foo==1.2', '-r requirements.txt').

			pip2tgz will download all packages required to install PACKAGE_NAMEs
			and save them to OUTPUT_DIRECTORY, creating it if needed. Flags must
			precede OUTPUT_DIRECTORY; everything after it is passed to pip.

			For example:

			    $ pip2tgz /var/www/packages/ -r requirements.txt foo==1.2 baz/
		`),
		Args: cli.MinimumArgs(2),
		RunE: cli.RunE(
			&cfg,
			parseArgs,
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.ConfigPath, "config", "", "path to a YAML or TOML configuration file")
	set.StringVar(&cfg.PipCommand, "pip-command", "", "space-separated pip download invocation (default \"pip download\")")
	return set
}
