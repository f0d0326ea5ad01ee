// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MissingFieldError reports that a stage's required input field was absent or
// empty. Fatal: it aborts the run.
type MissingFieldError struct {
	Stage string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %q is empty", e.Stage, e.Field)
}

// GenerationError wraps a failed text-generation call. Fatal for every stage
// except image generation, where it degrades to a placeholder URL.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ExportError wraps a failure in the export collaborator. It does not
// invalidate the already-computed output; callers record a failed export
// status instead of discarding the run.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export failed: %v", e.Err)
	}
	return fmt.Sprintf("export failed writing %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
