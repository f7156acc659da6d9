// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package act describes commands as a validated input, a set of
// dependencies and an action over both, independent of how they are invoked.
package act

import "context"

// Input is a validated input type such as a command's configuration.
type Input interface {
	Validate() error
}

// Deps is a marker type for dependency containers.
type Deps any

// InitDeps initializes dependencies from context.
type InitDeps[D Deps] func(context.Context) (D, error)

// Action is an operation over a validated input and its dependencies.
type Action[I Input, O any, D Deps] func(context.Context, I, D) (*O, error)

// NoOutput is the output of actions that only produce side effects.
type NoOutput struct{}
