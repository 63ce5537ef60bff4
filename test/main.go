package main

import (
	"os"

	"github.com/inilog/inilog/config"
	"github.com/inilog/inilog/log"
	"github.com/inilog/inilog/pipeline"
	"github.com/inilog/inilog/types"
)

// Small manual exercise of the pipeline: console at INFO, file at
// DEBUG, both fed by a root logger at DEBUG.
func main() {
	cfg := &config.Config{
		Formatters: map[string]config.FormatterConfig{
			"simpleFormatter": {
				Format: "[%(asctime)s] - %(levelname)s - %(message)s",
			},
			"fileFormatter": {
				Format:     "[%(asctime)s] - %(levelname)s - %(message)s",
				DateFormat: "%Y-%m-%d %H:%M:%S",
			},
		},
		Handlers: map[string]config.HandlerConfig{
			"consoleHandler": {
				Kind:      config.SinkStream,
				Level:     types.LevelInfo,
				Formatter: "simpleFormatter",
				Stream:    config.StreamStdout,
			},
			"fileHandler": {
				Kind:      config.SinkFile,
				Level:     types.LevelDebug,
				Formatter: "fileFormatter",
				Path:      "%(log_dir)s/log.txt",
				Mode:      config.FileTruncate,
			},
		},
		Loggers: map[string]config.LoggerConfig{
			config.RootLoggerName: {
				Level:     types.LevelDebug,
				Handlers:  []string{"consoleHandler", "fileHandler"},
				Propagate: true,
			},
		},
	}

	logDir, err := os.MkdirTemp("", "inilog-demo")
	if err != nil {
		panic(err)
	}

	if err := log.InitFromConfig(cfg, pipeline.WithVar("log_dir", logDir)); err != nil {
		panic(err)
	}
	defer log.Close()

	log.Debug("debug record, file only")
	log.Infof("info record, console and %s/log.txt", logDir)
	log.Warning("warning record")
	log.Error("error record")
	log.Critical("critical record")
}
