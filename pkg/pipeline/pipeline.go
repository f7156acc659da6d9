// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs the download, index and publish stages end to end.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/simpleindex/internal/uri"
	"github.com/google/simpleindex/pkg/dist"
	"github.com/google/simpleindex/pkg/fetch"
	"github.com/google/simpleindex/pkg/publish"
	"github.com/google/simpleindex/pkg/simple"
	"github.com/pkg/errors"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageIndex   Stage = "index"
	StagePublish Stage = "publish"
)

// StageError records the stage at which a pipeline run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Cause supports errors.Cause from github.com/pkg/errors.
func (e *StageError) Cause() error { return e.Err }

// WorkingDirPattern is the os.MkdirTemp pattern for remote runs.
const WorkingDirPattern = "pip2pi-working-dir"

// Options configures a Run.
type Options struct {
	Destination uri.Destination
	// Specs are passed to the Fetcher verbatim.
	Specs   []string
	Fetcher fetch.Fetcher
	// Publisher is nil when nothing needs to leave the working directory,
	// which is the case for local destinations.
	Publisher publish.Publisher
	Archives  dist.Matcher
}

// Run downloads Specs, builds an index over them and publishes it.
//
// Local destinations are built in place, creating the directory if needed.
// Remote destinations are built in a fresh temporary directory which is
// removed when Run returns, whatever the outcome.
func Run(ctx context.Context, opts Options) error {
	if opts.Fetcher == nil {
		return errors.New("no fetcher configured")
	}
	workDir := opts.Destination.Path
	if !opts.Destination.Remote() {
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", workDir)
		}
	} else {
		dir, err := os.MkdirTemp("", WorkingDirPattern)
		if err != nil {
			return errors.Wrap(err, "creating working directory")
		}
		defer func() {
			if err := os.RemoveAll(dir); err != nil {
				log.Printf("Failed to remove working directory %s: %v", dir, err)
			}
		}()
		workDir = dir
	}
	if err := opts.Fetcher.Fetch(ctx, workDir, opts.Specs); err != nil {
		return &StageError{Stage: StageFetch, Err: err}
	}
	if _, err := simple.Build(workDir, opts.Archives); err != nil {
		return &StageError{Stage: StageIndex, Err: err}
	}
	if opts.Publisher != nil {
		if err := opts.Publisher.Publish(ctx, workDir); err != nil {
			return &StageError{Stage: StagePublish, Err: err}
		}
	}
	return nil
}
