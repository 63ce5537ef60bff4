// Package pipeline turns a validated configuration into a live logging
// pipeline: formatters are compiled first, handlers open their sinks
// second, and loggers are assembled last, so that every name reference
// resolves against an already constructed object.
package pipeline

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inilog/inilog/config"
	"github.com/inilog/inilog/format"
	"github.com/inilog/inilog/types"
)

// Context is the explicit handle to an applied logging configuration.
// It owns the handler sinks and is solely responsible for flushing and
// closing them. Construct it once at process startup; loggers obtained
// from it are safe for concurrent use.
type Context struct {
	loggers  map[string]*Logger
	handlers map[string]*handler
	nop      *Logger

	closeOnce sync.Once
	closeErr  error
}

// New applies a configuration and returns the resulting context. On any
// failure every sink opened so far is closed again and the error is
// returned; a half-built pipeline never escapes.
func New(cfg *config.Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	formatters := make(map[string]*format.Formatter, len(cfg.Formatters))
	for _, name := range sortedKeys(cfg.Formatters) {
		fc := cfg.Formatters[name]
		f, err := format.Parse(fc.Format, fc.DateFormat)
		if err != nil {
			return nil, &types.ConfigurationError{Section: "formatter_" + name, Key: "format", Reason: err.Error()}
		}
		formatters[name] = f
	}
	defaultFormatter := format.MustParse(format.DefaultTemplate, "")

	ctx := &Context{
		loggers:  make(map[string]*Logger, len(cfg.Loggers)),
		handlers: make(map[string]*handler, len(cfg.Handlers)),
		nop:      &Logger{z: zap.NewNop()},
	}

	for _, name := range sortedKeys(cfg.Handlers) {
		hc := cfg.Handlers[name]
		f := defaultFormatter
		if hc.Formatter != "" {
			f = formatters[hc.Formatter]
		}
		h, err := newHandler(name, hc, f, o)
		if err != nil {
			_ = ctx.closeHandlers()
			return nil, err
		}
		ctx.handlers[name] = h
	}

	for name := range cfg.Loggers {
		ctx.loggers[name] = ctx.buildLogger(cfg, name)
	}

	return ctx, nil
}

// buildLogger assembles one logger from its own handlers plus the
// handlers inherited through propagation.
func (c *Context) buildLogger(cfg *config.Config, name string) *Logger {
	var (
		cores       []zapcore.Core
		needsCaller bool
	)
	for _, hname := range attachedHandlers(cfg, name) {
		h := c.handlers[hname]
		cores = append(cores, h.core)
		if h.core.formatter.NeedsCaller() {
			needsCaller = true
		}
	}

	var zopts []zap.Option
	if needsCaller {
		zopts = append(zopts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	core := &levelGate{
		min:  effectiveLevel(cfg, name),
		next: zapcore.NewTee(cores...),
	}

	return &Logger{
		name: name,
		z:    zap.New(core, zopts...),
	}
}

// levelGate applies the logger's own threshold in front of the handler
// cores, which keep their independent, possibly stricter thresholds.
type levelGate struct {
	min  types.Level
	next zapcore.Core
}

func (g *levelGate) Enabled(lvl zapcore.Level) bool {
	return g.min.Enabled(lvl) && g.next.Enabled(lvl)
}

func (g *levelGate) With(fields []zapcore.Field) zapcore.Core {
	return &levelGate{min: g.min, next: g.next.With(fields)}
}

func (g *levelGate) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !g.min.Enabled(ent.Level) {
		return ce
	}

	return g.next.Check(ent, ce)
}

func (g *levelGate) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return g.next.Write(ent, fields)
}

func (g *levelGate) Sync() error {
	return g.next.Sync()
}

// attachedHandlers returns the handler names a record emitted through
// the named logger is delivered to: the logger's own handlers followed
// by each ancestor's, walking up while propagation stays enabled.
func attachedHandlers(cfg *config.Config, name string) []string {
	lc := cfg.Loggers[name]
	names := append([]string{}, lc.Handlers...)

	cur := name
	for cur != config.RootLoggerName {
		if !cfg.Loggers[cur].Propagate {
			break
		}
		parent := parentLogger(cfg, cur)
		names = append(names, cfg.Loggers[parent].Handlers...)
		cur = parent
	}

	return names
}

// parentLogger finds the nearest configured ancestor by dotted-name
// prefix, falling back to the root logger.
func parentLogger(cfg *config.Config, name string) string {
	for {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return config.RootLoggerName
		}
		name = name[:i]
		if _, ok := cfg.Loggers[name]; ok {
			return name
		}
	}
}

// effectiveLevel resolves the threshold of a logger: its own level if
// set, otherwise the nearest configured ancestor's, otherwise WARNING.
func effectiveLevel(cfg *config.Config, name string) types.Level {
	cur := name
	for {
		if lvl := cfg.Loggers[cur].Level; lvl.IsSet() {
			return lvl
		}
		if cur == config.RootLoggerName {
			return types.LevelWarning
		}
		cur = parentLogger(cfg, cur)
	}
}

// Root returns the root logger.
func (c *Context) Root() *Logger {
	return c.loggers[config.RootLoggerName]
}

// Logger returns the named logger. Names the configuration does not
// define yield a shared no-op logger, so logging through them is safe
// and silent.
func (c *Context) Logger(name string) *Logger {
	if l, ok := c.loggers[name]; ok {
		return l
	}

	return c.nop
}

// Lookup returns the named logger and whether the configuration
// defines it. The logger is nil when ok is false; callers that want a
// usable logger regardless should use Logger instead.
func (c *Context) Lookup(name string) (*Logger, bool) {
	l, ok := c.loggers[name]

	return l, ok
}

// Sync flushes every handler sink. A failing sink does not prevent the
// others from being flushed.
func (c *Context) Sync() error {
	var err error
	for _, name := range sortedKeys(c.handlers) {
		err = multierr.Append(err, c.handlers[name].core.Sync())
	}

	return err
}

// Close flushes and releases every handler sink. It is idempotent;
// standard streams are flushed but never closed.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = multierr.Append(c.Sync(), c.closeHandlers())
	})

	return c.closeErr
}

func (c *Context) closeHandlers() error {
	var err error
	for _, name := range sortedKeys(c.handlers) {
		err = multierr.Append(err, c.handlers[name].close())
	}

	return err
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
