// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package pip2pi

import (
	"context"
	"flag"
	"strings"

	"github.com/fatih/color"
	"github.com/google/simpleindex/internal/command/pip2tgz"
	"github.com/google/simpleindex/internal/config"
	"github.com/google/simpleindex/internal/textwrap"
	"github.com/google/simpleindex/internal/uri"
	"github.com/google/simpleindex/pkg/act"
	"github.com/google/simpleindex/pkg/act/cli"
	"github.com/google/simpleindex/pkg/fetch"
	"github.com/google/simpleindex/pkg/pipeline"
	"github.com/google/simpleindex/pkg/publish"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the pip2pi command.
type Config struct {
	ConfigPath   string
	PipCommand   string
	RsyncCommand string
	Target       string
	Specs        []string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Target == "" {
		return errors.New("target is required")
	}
	if len(c.Specs) == 0 {
		return errors.New("at least one package is required")
	}
	return nil
}

// Deps holds dependencies for the command.
type Deps struct {
	IO           cli.IO
	NewFetcher   func(config.Pip) fetch.Fetcher
	NewPublisher func(context.Context, uri.Destination, publish.Options) (publish.Publisher, error)
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{
		NewFetcher:   pip2tgz.PipFetcher,
		NewPublisher: publish.New,
	}, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) < 2 {
		return cli.Usagef("expected a target and at least one package")
	}
	cfg.Target = args[0]
	cfg.Specs = args[1:]
	return nil
}

// Handler downloads the requested packages into the target's index and
// publishes it when the target is remote.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	settings, err := pip2tgz.LoadSettings(cfg.ConfigPath, cfg.PipCommand)
	if err != nil {
		return nil, err
	}
	if cfg.RsyncCommand != "" {
		settings.Rsync.Command = strings.Fields(cfg.RsyncCommand)
	}
	archives, err := settings.ArchiveMatcher()
	if err != nil {
		return nil, err
	}
	dest, err := uri.ParseDestination(cfg.Target)
	if err != nil {
		return nil, errors.Wrap(err, "parsing target")
	}
	pub, err := deps.NewPublisher(ctx, dest, publish.Options{Config: settings, Progress: deps.IO.Err})
	switch {
	case errors.Is(err, publish.ErrUnsupportedScheme):
		color.New(color.FgYellow).Fprintf(deps.IO.Err, "Warning: %v; the index will not be published\n", err)
	case err != nil:
		return nil, err
	}
	err = pipeline.Run(ctx, pipeline.Options{
		Destination: dest,
		Specs:       cfg.Specs,
		Fetcher:     deps.NewFetcher(settings.Pip),
		Publisher:   pub,
		Archives:    archives,
	})
	if err != nil {
		return nil, err
	}
	return &act.NoOutput{}, nil
}

// Command creates a new pip2pi command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "pip2pi [--config=FILE] [--pip-command=CMD] [--rsync-command=CMD] TARGET PACKAGE_NAME...",
		Short: "Add packages to a local or remote simple package index",
		Long: textwrap.Block(`
			Combines pip2tgz and dir2pi, adding PACKAGE_NAMEs to the package
			index at TARGET.

			TARGET is either a local directory or a remote destination:

			    host:path, rsync://host:path       copied with rsync
			    s3://[KEY:SECRET@]BUCKET[/PREFIX]  uploaded to Amazon S3
			    gs://BUCKET[/PREFIX]               uploaded to Google Cloud Storage

			Remote indexes are built in a temporary directory which is removed
			afterwards.

			For example, to create a remote index:

			    $ pip2pi example.com:/var/www/packages/ -r requirements.txt

			Or to create a local index:

			    $ pip2pi ~/Sites/packages/ foo==1.2
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
	set.StringVar(&cfg.RsyncCommand, "rsync-command", "", "space-separated rsync invocation used for remote hosts")
	return set
}
