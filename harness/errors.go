package harness

import "fmt"

// ConfigurationError reports an invalid or incomplete run configuration.
// It always surfaces before any test executes and before the workspace
// is created.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
