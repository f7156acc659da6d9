// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/google/simpleindex/internal/command/pip2tgz"
)

func main() {
	log.SetFlags(0)
	cmd := pip2tgz.Command()
	// Silence errors because we will print the error ourselves.
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
