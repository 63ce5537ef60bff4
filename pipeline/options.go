package pipeline

import (
	"io"
	"os"
)

type options struct {
	vars   map[string]string
	stdout io.Writer
	stderr io.Writer
}

// Option customizes pipeline construction.
type Option func(*options)

// WithVars supplies values for the %(name)s placeholders a file handler
// path may carry, such as the log directory chosen by the hosting
// application.
func WithVars(vars map[string]string) Option {
	return func(o *options) {
		for k, v := range vars {
			o.vars[k] = v
		}
	}
}

// WithVar supplies a single placeholder value.
func WithVar(name, value string) Option {
	return func(o *options) {
		o.vars[name] = value
	}
}

// WithStdout redirects handlers bound to sys.stdout to the given
// writer. Used by tests and embedders that capture console output.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStderr redirects handlers bound to sys.stderr to the given writer.
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

func defaultOptions() *options {
	return &options{
		vars:   map[string]string{},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}
