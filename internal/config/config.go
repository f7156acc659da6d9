// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package config loads settings for the index tools.
//
// Values are layered: built-in defaults, then an optional YAML or TOML file,
// then PIP2PI_* environment variables. Command-line flags are applied last by
// the commands themselves.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/simpleindex/pkg/dist"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PIP2PI"

// Config holds all tool configuration.
type Config struct {
	Pip   Pip   `yaml:"pip" toml:"pip" envconfig:"PIP"`
	Rsync Rsync `yaml:"rsync" toml:"rsync" envconfig:"RSYNC"`
	S3    S3    `yaml:"s3" toml:"s3" envconfig:"S3"`
	GCS   GCS   `yaml:"gcs" toml:"gcs" envconfig:"GCS"`
	// Archives lists the file extensions treated as distributions.
	Archives []string `yaml:"archives" toml:"archives" envconfig:"ARCHIVES"`
}

// Pip configures the package download command.
type Pip struct {
	// Command is the downloader invocation, e.g. ["python3", "-m", "pip", "download"].
	Command []string `yaml:"command" toml:"command" envconfig:"COMMAND"`
	// Args are passed after the destination flag and before the package specifiers.
	Args []string `yaml:"args" toml:"args" envconfig:"ARGS"`
}

// Rsync configures the file-sync publisher.
type Rsync struct {
	Command []string `yaml:"command" toml:"command" envconfig:"COMMAND"`
}

// S3 configures the S3 publisher.
type S3 struct {
	Region   string `yaml:"region" toml:"region" envconfig:"REGION"`
	Endpoint string `yaml:"endpoint" toml:"endpoint" envconfig:"ENDPOINT"`
}

// GCS configures the Cloud Storage publisher.
type GCS struct {
	Endpoint string `yaml:"endpoint" toml:"endpoint" envconfig:"ENDPOINT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pip: Pip{
			Command: []string{"pip", "download"},
		},
		Rsync: Rsync{
			Command: []string{"rsync", "--recursive", "--progress", "--links"},
		},
		S3: S3{
			Region: "us-east-1",
		},
		Archives: slices.Clone(dist.DefaultExtensions),
	}
}

// Load returns the configuration from path, if non-empty, with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
		if err := decode(path, b, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(b, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(b, cfg)
	default:
		return errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Pip.Command) == 0 {
		return errors.New("pip.command must not be empty")
	}
	if len(c.Rsync.Command) == 0 {
		return errors.New("rsync.command must not be empty")
	}
	if _, err := c.ArchiveMatcher(); err != nil {
		return errors.Wrap(err, "archives")
	}
	return nil
}

// ArchiveMatcher returns a matcher for the configured archive extensions.
func (c *Config) ArchiveMatcher() (dist.Matcher, error) {
	return dist.NewMatcher(c.Archives...)
}
