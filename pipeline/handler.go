package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/inilog/inilog/common"
	"github.com/inilog/inilog/config"
	"github.com/inilog/inilog/format"
	"github.com/inilog/inilog/types"
)

// handler owns one sink. The embedded core is shared by every logger
// the handler is attached to, so the sink resource is opened exactly
// once and all writes to it are serialized through the same lock.
type handler struct {
	name   string
	core   *handlerCore
	closer io.Closer
}

// handlerCore adapts a formatter and a sink into a zapcore.Core. Fields
// are ignored: records are rendered solely from the entry, the way the
// configured templates describe.
type handlerCore struct {
	level     types.Level
	formatter *format.Formatter
	ws        zapcore.WriteSyncer
}

func (c *handlerCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl)
}

func (c *handlerCore) With([]zapcore.Field) zapcore.Core {
	return c
}

func (c *handlerCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

func (c *handlerCore) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	// One Write call per record keeps lines from interleaving across
	// concurrent loggers sharing the sink.
	_, err := c.ws.Write(c.formatter.Format(ent))

	return err
}

func (c *handlerCore) Sync() error {
	return c.ws.Sync()
}

// streamWriter wraps a standard stream with a no-op Sync. Stdout and
// stderr are not seekable sync targets and must never be closed by the
// pipeline.
type streamWriter struct {
	w io.Writer
}

func (s streamWriter) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s streamWriter) Sync() error {
	return nil
}

// newHandler opens the sink described by hc and wires it to its
// formatter. File sinks create the parent directory when missing.
func newHandler(name string, hc config.HandlerConfig, f *format.Formatter, opts *options) (*handler, error) {
	h := &handler{
		name: name,
		core: &handlerCore{level: hc.Level, formatter: f},
	}

	switch hc.Kind {
	case config.SinkStream:
		w := opts.stderr
		if hc.Stream == config.StreamStdout {
			w = opts.stdout
		}
		h.core.ws = zapcore.Lock(streamWriter{w: w})

	case config.SinkFile:
		path := common.ExpandVars(hc.Path, opts.vars)
		if common.HasUnresolvedVars(path) {
			return nil, &types.ConfigurationError{
				Section: "handler_" + name, Key: "args",
				Reason: fmt.Sprintf("unresolved placeholder in path %q", path),
			}
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, &types.ResourceInitializationError{
					Resource: fmt.Sprintf("file handler %q (%s)", name, path),
					Err:      err,
				}
			}
		}
		flags := os.O_CREATE | os.O_WRONLY
		if hc.Mode == config.FileTruncate {
			flags |= os.O_TRUNC
		} else {
			flags |= os.O_APPEND
		}
		file, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return nil, &types.ResourceInitializationError{
				Resource: fmt.Sprintf("file handler %q (%s)", name, path),
				Err:      err,
			}
		}
		h.core.ws = zapcore.Lock(file)
		h.closer = file

	default:
		return nil, &types.ConfigurationError{
			Section: "handler_" + name, Key: "class",
			Reason: fmt.Sprintf("unrecognized sink kind %q", hc.Kind),
		}
	}

	return h, nil
}

// close releases the sink resource, if the handler owns one.
func (h *handler) close() error {
	if h.closer == nil {
		return nil
	}

	return h.closer.Close()
}
