// Package log provides a package-level facade over a process-wide
// logging pipeline, for hosts that prefer not to pass an explicit
// pipeline.Context around. Initialize it once at startup with Init or
// InitFromConfig; before initialization a built-in last-resort pipeline
// writes WARNING and above to standard error.
package log

import (
	"sync"
	"sync/atomic"

	"github.com/inilog/inilog/config"
	"github.com/inilog/inilog/pipeline"
	"github.com/inilog/inilog/types"
)

type holder struct {
	ctx  *pipeline.Context
	root *pipeline.Logger
}

var global atomic.Pointer[holder]

var (
	fallbackOnce sync.Once
	fallback     *holder
)

// Init loads a configuration file and installs the resulting pipeline
// as the process-wide logger. A previously installed pipeline is closed.
func Init(path string, opts ...pipeline.Option) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	return InitFromConfig(cfg, opts...)
}

// InitFromConfig installs a pipeline built from an in-memory
// configuration as the process-wide logger.
func InitFromConfig(cfg *config.Config, opts ...pipeline.Option) error {
	ctx, err := pipeline.New(cfg, opts...)
	if err != nil {
		return err
	}

	install(ctx)

	return nil
}

func install(ctx *pipeline.Context) {
	// The facade adds one stack frame, keep %(filename)s pointing at
	// the application call site.
	h := &holder{ctx: ctx, root: ctx.Root().WithCallerSkip(1)}
	if old := global.Swap(h); old != nil {
		_ = old.ctx.Close()
	}
}

// lastResort mirrors the behavior of an unconfigured logging runtime:
// warnings and worse still reach standard error.
func lastResort() *holder {
	fallbackOnce.Do(func() {
		cfg := &config.Config{
			Formatters: map[string]config.FormatterConfig{
				"default": {Format: "[%(asctime)s] - %(levelname)s - %(message)s"},
			},
			Handlers: map[string]config.HandlerConfig{
				"console": {
					Kind:      config.SinkStream,
					Level:     types.LevelWarning,
					Formatter: "default",
					Stream:    config.StreamStderr,
				},
			},
			Loggers: map[string]config.LoggerConfig{
				config.RootLoggerName: {
					Level:     types.LevelWarning,
					Handlers:  []string{"console"},
					Propagate: true,
				},
			},
		}
		ctx, err := pipeline.New(cfg)
		if err != nil {
			panic(err)
		}
		fallback = &holder{ctx: ctx, root: ctx.Root().WithCallerSkip(1)}
	})

	return fallback
}

func current() *holder {
	if h := global.Load(); h != nil {
		return h
	}

	return lastResort()
}

// Logger returns a named logger from the installed pipeline.
func Logger(name string) *pipeline.Logger {
	return current().ctx.Logger(name)
}

// Sync flushes the installed pipeline.
func Sync() error {
	return current().ctx.Sync()
}

// Close flushes and releases the installed pipeline.
func Close() error {
	return current().ctx.Close()
}

// Debug emits a record at DEBUG level through the root logger.
func Debug(args ...interface{}) {
	current().root.Debug(args...)
}

// Debugf emits a formatted record at DEBUG level through the root logger.
func Debugf(template string, args ...interface{}) {
	current().root.Debugf(template, args...)
}

// Info emits a record at INFO level through the root logger.
func Info(args ...interface{}) {
	current().root.Info(args...)
}

// Infof emits a formatted record at INFO level through the root logger.
func Infof(template string, args ...interface{}) {
	current().root.Infof(template, args...)
}

// Warning emits a record at WARNING level through the root logger.
func Warning(args ...interface{}) {
	current().root.Warning(args...)
}

// Warningf emits a formatted record at WARNING level through the root logger.
func Warningf(template string, args ...interface{}) {
	current().root.Warningf(template, args...)
}

// Error emits a record at ERROR level through the root logger.
func Error(args ...interface{}) {
	current().root.Error(args...)
}

// Errorf emits a formatted record at ERROR level through the root logger.
func Errorf(template string, args ...interface{}) {
	current().root.Errorf(template, args...)
}

// Critical emits a record at CRITICAL level through the root logger.
func Critical(args ...interface{}) {
	current().root.Critical(args...)
}

// Criticalf emits a formatted record at CRITICAL level through the root logger.
func Criticalf(template string, args ...interface{}) {
	current().root.Criticalf(template, args...)
}
