package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inilog/inilog/types"
)

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("testdata/logging.conf")
	require.NoError(t, err)

	require.Len(t, cfg.Loggers, 1)
	root, ok := cfg.Loggers["root"]
	require.True(t, ok)
	require.Equal(t, types.LevelDebug, root.Level)
	require.Equal(t, []string{"consoleHandler", "fileHandler"}, root.Handlers)

	// The commented-out logger must not leak into the registry.
	_, ok = cfg.Loggers["simpleExample"]
	require.False(t, ok)

	console := cfg.Handlers["consoleHandler"]
	require.Equal(t, SinkStream, console.Kind)
	require.Equal(t, types.LevelInfo, console.Level)
	require.Equal(t, "simpleFormatter", console.Formatter)
	require.Equal(t, StreamStdout, console.Stream)

	file := cfg.Handlers["fileHandler"]
	require.Equal(t, SinkFile, file.Kind)
	require.Equal(t, types.LevelDebug, file.Level)
	require.Equal(t, "fileFormatter", file.Formatter)
	require.Equal(t, "%(log_dir)s/log.txt", file.Path)
	require.Equal(t, FileTruncate, file.Mode)

	require.Equal(t, "[%(asctime)s] - %(levelname)s - %(message)s", cfg.Formatters["simpleFormatter"].Format)
	require.Equal(t, "", cfg.Formatters["simpleFormatter"].DateFormat)
	require.Equal(t, "%Y-%m-%d %H:%M:%S", cfg.Formatters["fileFormatter"].DateFormat)
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		section string
	}{
		{
			name: "dangling handler reference",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
level=DEBUG
handlers=h,missing
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "logger_root",
		},
		{
			name: "dangling formatter reference",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=StreamHandler
formatter=missing
[formatter_f]
format=%(message)s
`,
			section: "handler_h",
		},
		{
			name: "invalid level name",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
level=VERBOSE
handlers=h
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "logger_root",
		},
		{
			name: "unrecognized sink class",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=SocketHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "handler_h",
		},
		{
			name: "malformed args tuple",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=FileHandler
formatter=f
args=('log.txt
[formatter_f]
format=%(message)s
`,
			section: "handler_h",
		},
		{
			name: "file handler without path",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=FileHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "handler_h",
		},
		{
			name: "listed key without section",
			doc: `
[loggers]
keys=root
[handlers]
keys=h,ghost
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "handlers",
		},
		{
			name: "root logger missing",
			doc: `
[loggers]
keys=app
[handlers]
keys=h
[formatters]
keys=f
[logger_app]
handlers=h
qualname=app
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(message)s
`,
			section: "loggers",
		},
		{
			name: "unrecognized template field",
			doc: `
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
handlers=h
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(threadName)s %(message)s
`,
			section: "formatter_f",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.doc))
			require.Error(t, err)

			var cfgErr *types.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, c.section, cfgErr.Section)
		})
	}
}

func TestDuplicateKeyLastWins(t *testing.T) {
	cfg, err := Parse([]byte(`
[loggers]
keys=root
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
level=INFO
level=ERROR
handlers=h
[handler_h]
class=StreamHandler
formatter=f
[formatter_f]
format=%(message)s
`))
	require.NoError(t, err)
	require.Equal(t, types.LevelError, cfg.Loggers["root"].Level)
}

func TestLoggerQualnameAndPropagate(t *testing.T) {
	cfg, err := Parse([]byte(`
[loggers]
keys=root,simpleExample
[handlers]
keys=h
[formatters]
keys=f
[logger_root]
level=DEBUG
handlers=h
[logger_simpleExample]
level=INFO
handlers=h
qualname=example.simple
propagate=0
[handler_h]
class=StreamHandler
args=(sys.stderr,)
formatter=f
[formatter_f]
format=%(message)s
`))
	require.NoError(t, err)

	lc, ok := cfg.Loggers["example.simple"]
	require.True(t, ok)
	require.False(t, lc.Propagate)
	require.Equal(t, types.LevelInfo, lc.Level)

	_, ok = cfg.Loggers["simpleExample"]
	require.False(t, ok)
}

func TestHandlerDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[loggers]
keys=root
[handlers]
keys=console,file
[formatters]
keys=f
[logger_root]
handlers=console,file
[handler_console]
class=logging.StreamHandler
formatter=f
[handler_file]
class=FileHandler
args=('run.log',)
[formatter_f]
format=%(message)s
`))
	require.NoError(t, err)

	console := cfg.Handlers["console"]
	require.Equal(t, StreamStderr, console.Stream)
	require.Equal(t, types.LevelNotSet, console.Level)

	file := cfg.Handlers["file"]
	require.Equal(t, FileAppend, file.Mode)
	require.Equal(t, "", file.Formatter)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.conf")
	require.Error(t, err)
}
