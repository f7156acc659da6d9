// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package publish copies a built index to a remote destination.
package publish

import (
	"context"
	"io"
	"os"

	"github.com/google/simpleindex/internal/config"
	"github.com/google/simpleindex/internal/uri"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// Publisher copies the contents of a local index directory to its destination.
type Publisher interface {
	Publish(ctx context.Context, dir string) error
}

// ErrUnsupportedScheme indicates a remote destination no Publisher can serve.
var ErrUnsupportedScheme = errors.New("unsupported destination scheme")

// Options tunes Publisher construction.
type Options struct {
	Config *config.Config
	// Progress receives upload progress for object storage destinations.
	Progress io.Writer
}

// New constructs the Publisher for dest.
//
// Local destinations need no publishing and yield a nil Publisher. Clients
// and credentials are resolved here so misconfiguration surfaces before any
// work is done.
func New(ctx context.Context, dest uri.Destination, opts Options) (Publisher, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stderr
	}
	switch dest.Kind {
	case uri.Local:
		return nil, nil
	case uri.Rsync:
		return &Rsync{Command: cfg.Rsync.Command, Target: dest.Path}, nil
	case uri.S3:
		b, err := NewS3Bucket(ctx, dest, cfg.S3)
		if err != nil {
			return nil, errors.Wrap(err, "configuring S3")
		}
		return &ObjectStore{Uploader: b, Prefix: dest.Prefix, Label: dest.String(), Progress: progress}, nil
	case uri.GCS:
		var gcsOpts []option.ClientOption
		if cfg.GCS.Endpoint != "" {
			gcsOpts = append(gcsOpts, option.WithEndpoint(cfg.GCS.Endpoint))
		}
		b, err := NewGCSBucket(ctx, dest.Bucket, gcsOpts...)
		if err != nil {
			return nil, errors.Wrap(err, "configuring GCS")
		}
		return &ObjectStore{Uploader: b, Prefix: dest.Prefix, Label: dest.String(), Progress: progress}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "%q", dest.Scheme)
	}
}
