package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
	endian     string
	precision  string
	debugOut   string
)

// loaded is the config file read by setup.
var loaded Config

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (console, json, text)",
			Value:       "console",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endian",
			Aliases:     []string{"e"},
			Usage:       "byte order (auto, little, big)",
			Value:       "auto",
			Destination: &endian,
		},
		&cli.StringFlag{
			Name:        "precision",
			Aliases:     []string{"p"},
			Usage:       "word precision (single, double)",
			Value:       "single",
			Destination: &precision,
		},
	}
}
