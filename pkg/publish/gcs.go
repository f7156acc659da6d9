// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GCSBucket uploads objects to a Cloud Storage bucket with the publicRead predefined ACL.
type GCSBucket struct {
	gcsClient *gcs.Client
	bucket    string
}

var _ Uploader = &GCSBucket{}

// NewGCSBucket creates a GCSBucket.
func NewGCSBucket(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSBucket, error) {
	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating GCS client")
	}
	return &GCSBucket{gcsClient: c, bucket: bucket}, nil
}

// Upload writes r to key.
func (b *GCSBucket) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	w := b.gcsClient.Bucket(b.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = "publicRead"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Close releases the underlying client.
func (b *GCSBucket) Close() error {
	return b.gcsClient.Close()
}
