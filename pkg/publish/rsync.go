// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"log"
	"os/exec"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// DefaultRsyncCommand mirrors recursively and preserves symlinks.
var DefaultRsyncCommand = []string{"rsync", "--recursive", "--progress", "--links"}

// Rsync publishes by mirroring the directory with rsync.
type Rsync struct {
	Command []string
	// Target is an rsync destination, e.g. "example.com:/var/www/packages".
	Target string
}

var _ Publisher = &Rsync{}

func (r *Rsync) argv(dir string) []string {
	cmd := r.Command
	if len(cmd) == 0 {
		cmd = DefaultRsyncCommand
	}
	// Trailing slashes copy the directory's contents rather than the directory itself.
	return append(slices.Clone(cmd), strings.TrimSuffix(dir, "/")+"/", strings.TrimSuffix(r.Target, "/")+"/")
}

// Publish copies dir to the rsync target.
func (r *Rsync) Publish(ctx context.Context, dir string) error {
	log.Printf("- Copying temporary index at %q to %q...", dir, r.Target)
	argv := r.argv(dir)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = log.Default().Writer()
	cmd.Stderr = log.Default().Writer()
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", argv[0])
	}
	return nil
}
