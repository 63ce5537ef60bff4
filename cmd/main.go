package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/inilog/inilog"
	"github.com/inilog/inilog/config"
	"github.com/inilog/inilog/pipeline"
	"github.com/urfave/cli/v2"
)

const appName = "inilog"

var (
	configFileFlag = cli.StringFlag{
		Name:     "cfg",
		Aliases:  []string{"c"},
		Usage:    "Configuration `FILE`",
		Required: true,
	}
	varFlag = cli.StringSliceFlag{
		Name:     "var",
		Aliases:  []string{"v"},
		Usage:    "Placeholder value as `NAME=VALUE`, e.g. log_dir=/var/log/app",
		Required: false,
	}
	probeFlag = cli.BoolFlag{
		Name:     "probe",
		Aliases:  []string{"p"},
		Usage:    "Also build the pipeline, opening every handler sink, then tear it down",
		Required: false,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = inilog.Version
	app.Commands = []*cli.Command{
		{
			Name:   "version",
			Usage:  "Application version and build",
			Action: versionCmd,
		},
		{
			Name:   "check",
			Usage:  "Validate a logging configuration file",
			Action: checkCmd,
			Flags:  []cli.Flag{&configFileFlag, &varFlag, &probeFlag},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd(*cli.Context) error {
	inilog.PrintVersion(os.Stdout)

	return nil
}

func checkCmd(ctx *cli.Context) error {
	path := ctx.String(configFileFlag.Name)

	vars := map[string]string{}
	for _, kv := range ctx.StringSlice(varFlag.Name) {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return cli.Exit(fmt.Sprintf("malformed --var %q, expected NAME=VALUE", kv), 1)
		}
		vars[name] = value
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if ctx.Bool(probeFlag.Name) {
		p, err := pipeline.New(cfg, pipeline.WithVars(vars))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := p.Close(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	fmt.Printf("%s: %d logger(s), %d handler(s), %d formatter(s) OK\n",
		path, len(cfg.Loggers), len(cfg.Handlers), len(cfg.Formatters))

	return nil
}
