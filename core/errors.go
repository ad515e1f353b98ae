package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine. Per-finding failures are recovered locally
// and counted; only run-level problems propagate to the caller.
var (
	// ErrInvalidPath marks a tool identifier the path normalizer rejected.
	ErrInvalidPath = errors.New("invalid path")

	// ErrResourceExhausted marks a run that hit a max* limit. The result
	// built so far stays valid and is flagged as partial.
	ErrResourceExhausted = errors.New("resource limit exhausted")
)

// ValidationError reports every missing or invalid field on one finding.
// The finding is dropped from the pipeline; the run continues.
type ValidationError struct {
	ToolName string
	Title    string
	Errors   []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("finding from %s failed validation: %s", e.ToolName, strings.Join(e.Errors, "; "))
}
