package deps

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/libsgen/pkg/errors"
)

// ResolutionError reports an artifact that could not be resolved into a
// project. It aborts the walk that encountered it.
type ResolutionError struct {
	Artifact Artifact // The artifact that failed to resolve
	Err      error    // Underlying cause
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("error building project for %s: %v", e.Artifact, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Code returns [errs.ErrCodeResolution].
func (e *ResolutionError) Code() errs.Code { return errs.ErrCodeResolution }

// CycleError reports an artifact that depends on itself through the chain
// of projects currently being walked.
type CycleError struct {
	Path []Artifact // Walk path from the first artifact to the repeated one
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, a := range e.Path {
		parts[i] = a.Key().String()
	}
	return "dependency cycle: " + strings.Join(parts, " -> ")
}

// Code returns [errs.ErrCodeDependencyCycle].
func (e *CycleError) Code() errs.Code { return errs.ErrCodeDependencyCycle }
