package types

import "fmt"

// ConfigurationError reports a malformed or unresolvable configuration:
// an unknown reference, an invalid level name, an unrecognized sink
// class, a malformed argument tuple or an invalid format template. It is
// deterministic, so retrying the load without fixing the input cannot
// succeed.
type ConfigurationError struct {
	// Section is the configuration section the error was found in
	Section string
	// Key is the offending key within the section, when applicable
	Key string
	// Reason describes what is wrong with the value
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error in [%s]: %s", e.Section, e.Reason)
	}

	return fmt.Sprintf("configuration error in [%s] %s: %s", e.Section, e.Key, e.Reason)
}

// ResourceInitializationError reports a failure to acquire a handler
// sink, such as a log file that cannot be created or opened.
type ResourceInitializationError struct {
	// Resource identifies the sink that could not be initialized
	Resource string
	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *ResourceInitializationError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Resource, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *ResourceInitializationError) Unwrap() error {
	return e.Err
}
