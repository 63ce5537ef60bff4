// Package config parses the declarative INI document describing
// loggers, handlers and formatters into a validated, fully typed
// configuration graph.
//
// The document layout follows Python's fileConfig convention: the
// [loggers], [handlers] and [formatters] sections enumerate entity
// identifiers under a keys option, and each identifier owns a
// [logger_<id>], [handler_<id>] or [formatter_<id>] section with its
// attributes. Sections not listed under keys are inert, as are
// commented-out entries. When a key is defined twice within a section
// the last definition wins.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/inilog/inilog/format"
	"github.com/inilog/inilog/types"
)

// SinkKind selects where a handler writes.
type SinkKind string

const (
	// SinkStream writes to a process standard stream
	SinkStream SinkKind = "stream"
	// SinkFile writes to a file
	SinkFile SinkKind = "file"
)

// FileMode selects how a file sink is opened.
type FileMode string

const (
	// FileTruncate opens the file with its previous contents discarded
	FileTruncate FileMode = "w"
	// FileAppend opens the file preserving its previous contents
	FileAppend FileMode = "a"
)

// StreamTarget names a process standard stream.
type StreamTarget string

const (
	// StreamStdout targets standard output
	StreamStdout StreamTarget = "sys.stdout"
	// StreamStderr targets standard error
	StreamStderr StreamTarget = "sys.stderr"
)

// FormatterConfig describes one formatter entry.
type FormatterConfig struct {
	// Format is the %(field)s message template
	Format string
	// DateFormat is the optional strftime-style timestamp pattern
	DateFormat string
}

// HandlerConfig describes one handler entry.
type HandlerConfig struct {
	// Kind is the sink kind resolved from the class option
	Kind SinkKind
	// Level is the handler threshold, independent from any logger level
	Level types.Level
	// Formatter references a formatter by name, empty for the default
	Formatter string
	// Stream is the target stream of a SinkStream handler
	Stream StreamTarget
	// Path is the target file of a SinkFile handler, possibly carrying
	// %(name)s placeholders resolved by the hosting application
	Path string
	// Mode is the open mode of a SinkFile handler
	Mode FileMode
}

// LoggerConfig describes one logger entry.
type LoggerConfig struct {
	// Level is the logger threshold, LevelNotSet to inherit
	Level types.Level
	// Handlers references handlers by name, in attachment order
	Handlers []string
	// Propagate forwards records to ancestor handlers when true
	Propagate bool
}

// Config is the parsed configuration graph. Loggers reference handlers
// and handlers reference formatters, always by name; Validate checks
// that every reference resolves.
type Config struct {
	Formatters map[string]FormatterConfig
	Handlers   map[string]HandlerConfig
	Loggers    map[string]LoggerConfig
}

// RootLoggerName is the identifier of the mandatory root logger.
const RootLoggerName = "root"

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// Load reads, parses and validates a configuration file.
func Load(path string) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration file %s", path)
	}

	return build(f)
}

// Parse parses and validates an in-memory configuration document.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}

	return build(f)
}

func build(f *ini.File) (*Config, error) {
	cfg := &Config{
		Formatters: map[string]FormatterConfig{},
		Handlers:   map[string]HandlerConfig{},
		Loggers:    map[string]LoggerConfig{},
	}

	formatterIDs, err := entityKeys(f, "formatters")
	if err != nil {
		return nil, err
	}
	for _, id := range formatterIDs {
		fc, err := buildFormatter(f, id)
		if err != nil {
			return nil, err
		}
		cfg.Formatters[id] = fc
	}

	handlerIDs, err := entityKeys(f, "handlers")
	if err != nil {
		return nil, err
	}
	for _, id := range handlerIDs {
		hc, err := buildHandler(f, id)
		if err != nil {
			return nil, err
		}
		cfg.Handlers[id] = hc
	}

	loggerIDs, err := entityKeys(f, "loggers")
	if err != nil {
		return nil, err
	}
	for _, id := range loggerIDs {
		name, lc, err := buildLogger(f, id)
		if err != nil {
			return nil, err
		}
		cfg.Loggers[name] = lc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// entityKeys returns the identifiers listed under the keys option of a
// registry section, in declaration order.
func entityKeys(f *ini.File, section string) ([]string, error) {
	sec, err := f.GetSection(section)
	if err != nil {
		return nil, &types.ConfigurationError{Section: section, Reason: "section is missing"}
	}
	if !sec.HasKey("keys") {
		return nil, &types.ConfigurationError{Section: section, Key: "keys", Reason: "option is missing"}
	}

	return splitList(sec.Key("keys").String()), nil
}

func buildFormatter(f *ini.File, id string) (FormatterConfig, error) {
	section := "formatter_" + id
	sec, err := f.GetSection(section)
	if err != nil {
		return FormatterConfig{}, &types.ConfigurationError{
			Section: "formatters", Key: "keys",
			Reason: fmt.Sprintf("formatter %q has no [%s] section", id, section),
		}
	}

	fc := FormatterConfig{
		// Python renders the bare message when no template is given.
		Format:     "%(message)s",
		DateFormat: sec.Key("datefmt").String(),
	}
	if sec.HasKey("format") {
		fc.Format = sec.Key("format").String()
	}

	return fc, nil
}

func buildHandler(f *ini.File, id string) (HandlerConfig, error) {
	section := "handler_" + id
	sec, err := f.GetSection(section)
	if err != nil {
		return HandlerConfig{}, &types.ConfigurationError{
			Section: "handlers", Key: "keys",
			Reason: fmt.Sprintf("handler %q has no [%s] section", id, section),
		}
	}

	var hc HandlerConfig

	class := strings.TrimPrefix(sec.Key("class").String(), "logging.")
	switch class {
	case "StreamHandler":
		hc.Kind = SinkStream
	case "FileHandler":
		hc.Kind = SinkFile
	case "":
		return HandlerConfig{}, &types.ConfigurationError{Section: section, Key: "class", Reason: "option is missing"}
	default:
		return HandlerConfig{}, &types.ConfigurationError{
			Section: section, Key: "class",
			Reason: fmt.Sprintf("unrecognized sink class %q", sec.Key("class").String()),
		}
	}

	hc.Level, err = optionalLevel(sec, section)
	if err != nil {
		return HandlerConfig{}, err
	}
	hc.Formatter = strings.TrimSpace(sec.Key("formatter").String())

	args, err := parseTuple(sec.Key("args").String())
	if err != nil {
		return HandlerConfig{}, &types.ConfigurationError{Section: section, Key: "args", Reason: err.Error()}
	}

	switch hc.Kind {
	case SinkStream:
		if err := applyStreamArgs(&hc, args); err != nil {
			return HandlerConfig{}, &types.ConfigurationError{Section: section, Key: "args", Reason: err.Error()}
		}
	case SinkFile:
		if err := applyFileArgs(&hc, args); err != nil {
			return HandlerConfig{}, &types.ConfigurationError{Section: section, Key: "args", Reason: err.Error()}
		}
	}

	return hc, nil
}

// applyStreamArgs resolves a stream handler args tuple. With no args the
// handler binds standard error, matching the StreamHandler default.
func applyStreamArgs(hc *HandlerConfig, args []argValue) error {
	switch len(args) {
	case 0:
		hc.Stream = StreamStderr
	case 1:
		if args[0].quoted {
			return fmt.Errorf("stream target must be sys.stdout or sys.stderr, not a string literal")
		}
		switch StreamTarget(args[0].value) {
		case StreamStdout:
			hc.Stream = StreamStdout
		case StreamStderr:
			hc.Stream = StreamStderr
		default:
			return fmt.Errorf("unrecognized stream target %q", args[0].value)
		}
	default:
		return fmt.Errorf("expected at most one stream target, got %d args", len(args))
	}

	return nil
}

// applyFileArgs resolves a file handler args tuple of the shape
// (path[, mode]). The mode defaults to append, matching the FileHandler
// default.
func applyFileArgs(hc *HandlerConfig, args []argValue) error {
	if len(args) == 0 {
		return fmt.Errorf("file handler requires a target path")
	}
	if len(args) > 2 {
		return fmt.Errorf("expected (path[, mode]), got %d args", len(args))
	}
	if args[0].value == "" {
		return fmt.Errorf("file handler target path is empty")
	}
	hc.Path = args[0].value

	hc.Mode = FileAppend
	if len(args) == 2 {
		switch FileMode(args[1].value) {
		case FileTruncate, FileAppend:
			hc.Mode = FileMode(args[1].value)
		default:
			return fmt.Errorf("unrecognized open mode %q", args[1].value)
		}
	}

	return nil
}

func buildLogger(f *ini.File, id string) (string, LoggerConfig, error) {
	section := "logger_" + id
	sec, err := f.GetSection(section)
	if err != nil {
		return "", LoggerConfig{}, &types.ConfigurationError{
			Section: "loggers", Key: "keys",
			Reason: fmt.Sprintf("logger %q has no [%s] section", id, section),
		}
	}

	var lc LoggerConfig
	lc.Level, err = optionalLevel(sec, section)
	if err != nil {
		return "", LoggerConfig{}, err
	}
	lc.Handlers = splitList(sec.Key("handlers").String())
	lc.Propagate = sec.Key("propagate").MustBool(true)

	// Non-root loggers are registered under their qualified name.
	name := strings.TrimSpace(sec.Key("qualname").String())
	if name == "" || id == RootLoggerName {
		name = id
	}

	return name, lc, nil
}

// optionalLevel parses the level option of a section, returning
// LevelNotSet when the option is absent.
func optionalLevel(sec *ini.Section, section string) (types.Level, error) {
	if !sec.HasKey("level") {
		return types.LevelNotSet, nil
	}
	lvl, err := types.ParseLevel(sec.Key("level").String())
	if err != nil {
		return types.LevelNotSet, &types.ConfigurationError{Section: section, Key: "level", Reason: err.Error()}
	}

	return lvl, nil
}

// Validate checks referential integrity and template validity so that
// the pipeline only ever resolves references against defined entities.
func (c *Config) Validate() error {
	if _, ok := c.Loggers[RootLoggerName]; !ok {
		return &types.ConfigurationError{Section: "loggers", Key: "keys", Reason: "root logger is not defined"}
	}

	for _, name := range sortedKeys(c.Formatters) {
		fc := c.Formatters[name]
		if _, err := format.Parse(fc.Format, fc.DateFormat); err != nil {
			return &types.ConfigurationError{Section: "formatter_" + name, Key: "format", Reason: err.Error()}
		}
	}

	for _, name := range sortedKeys(c.Handlers) {
		hc := c.Handlers[name]
		if hc.Formatter == "" {
			continue
		}
		if _, ok := c.Formatters[hc.Formatter]; !ok {
			return &types.ConfigurationError{
				Section: "handler_" + name, Key: "formatter",
				Reason: fmt.Sprintf("formatter %q is not defined", hc.Formatter),
			}
		}
	}

	for _, name := range sortedKeys(c.Loggers) {
		lc := c.Loggers[name]
		for _, h := range lc.Handlers {
			if _, ok := c.Handlers[h]; !ok {
				return &types.ConfigurationError{
					Section: "logger_" + name, Key: "handlers",
					Reason: fmt.Sprintf("handler %q is not defined", h),
				}
			}
		}
	}

	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
