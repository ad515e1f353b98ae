// Package contract provides configuration, interfaces and shared utilities
// for the codecity CLI's internal architecture.
package contract

import "errors"

// ErrConfiguration marks a recognized configuration option that is out of
// range. Configuration errors are fatal for the run.
var ErrConfiguration = errors.New("configuration error")
