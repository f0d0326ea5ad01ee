// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the boundary to the text-generation capability. The workflow
// core depends only on the Backend interfaces here; retries, backoff, and
// provider wiring stay on this side of the boundary.
package llm

import "context"

// Backend issues a single text-generation call for a prompt.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageBackend turns an image prompt into a hosted image URL.
type ImageBackend interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, prompt string) (string, error)

func (f BackendFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
