package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by every lookup that misses. Callers render a
// not-found fallback; lookups never panic.
var ErrNotFound = errors.New("registry: not found")

// BuildError aborts registry construction. Missing nav content and malformed
// nav structure are configuration mistakes, not runtime conditions.
type BuildError struct {
	Path   string
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	msg := "registry: " + e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("registry: %s: %q", e.Reason, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// SpecError records an OpenAPI source that failed to parse. A bad spec is
// isolated so other specs and documents still load.
type SpecError struct {
	Prefix string
	Err    error
}

func (e SpecError) Error() string {
	return fmt.Sprintf("registry: spec %q: %v", e.Prefix, e.Err)
}

func (e SpecError) Unwrap() error {
	return e.Err
}
