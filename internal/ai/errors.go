package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no provider API key was resolved at
	// startup; every completion call fails fast with it.
	ErrNotConfigured = errors.New("AI API key is not configured")

	// ErrUnsupportedFeature is returned for an operation tag outside the
	// declared enumeration.
	ErrUnsupportedFeature = errors.New("unsupported AI feature")
)

// ParamError reports a missing or malformed operation parameter. It is raised
// before any provider call is made.
type ParamError struct {
	Message string
}

func (e *ParamError) Error() string { return e.Message }

func invalidParams(format string, v ...interface{}) error {
	return &ParamError{Message: fmt.Sprintf(format, v...)}
}

// UpstreamError reports a provider transport failure, non-success status or
// malformed response body. Status is zero for transport-level failures.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }
