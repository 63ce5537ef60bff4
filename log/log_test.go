package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inilog/inilog/pipeline"
)

const testDoc = `
[loggers]
keys=root

[handlers]
keys=console,file

[formatters]
keys=plain

[logger_root]
level=DEBUG
handlers=console,file

[handler_console]
class=StreamHandler
level=INFO
formatter=plain
args=(sys.stdout,)

[handler_file]
class=FileHandler
level=DEBUG
formatter=plain
args=('%(log_dir)s/log.txt', 'w')

[formatter_plain]
format=%(levelname)s - %(message)s
`

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logging.conf")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))

	return path
}

func TestInitAndEmit(t *testing.T) {
	var stdout bytes.Buffer
	dir := t.TempDir()

	err := Init(writeConfig(t), pipeline.WithVar("log_dir", dir), pipeline.WithStdout(&stdout))
	require.NoError(t, err)
	defer func() { require.NoError(t, Close()) }()

	Debug("debug line")
	Infof("info %s", "line")
	Warning("warning line")
	require.NoError(t, Sync())

	require.Equal(t, "INFO - info line\nWARNING - warning line\n", stdout.String())

	data, err := os.ReadFile(filepath.Join(dir, "log.txt"))
	require.NoError(t, err)
	require.Equal(t, "DEBUG - debug line\nINFO - info line\nWARNING - warning line\n", string(data))
}

func TestInitFailsOnBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.conf")
	require.NoError(t, os.WriteFile(path, []byte("[loggers]\nkeys=root\n"), 0o644))

	require.Error(t, Init(path))
}

func TestUnknownLoggerThroughFacade(t *testing.T) {
	var stdout bytes.Buffer
	dir := t.TempDir()

	require.NoError(t, Init(writeConfig(t), pipeline.WithVar("log_dir", dir), pipeline.WithStdout(&stdout)))
	defer func() { require.NoError(t, Close()) }()

	Logger("simpleExample").Error("should vanish")
	require.NoError(t, Sync())
	require.Empty(t, stdout.String())
}
