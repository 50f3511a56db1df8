package routing

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an unknown node, building, or room.
var ErrNotFound = errors.New("not found")

// ErrNoPath reports that both endpoints exist but no route connects them.
// It unwraps to ErrNotFound so callers can treat it as a not-found result
// while still distinguishing disconnected graphs for diagnostics.
var ErrNoPath = fmt.Errorf("no path exists: %w", ErrNotFound)

// ConfigError reports malformed graph input discovered while compiling a
// graph. A rebuild that fails with a ConfigError leaves the previously
// cached graph in place.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid graph configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
