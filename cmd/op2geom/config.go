package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config is the optional config file (~/.config/op2geom/config.yaml).
// Flags given on the command line always win over it.
type Config struct {
	// Decoding defaults
	Endian    string `yaml:"endian"`
	Precision string `yaml:"precision"`
	DebugOut  string `yaml:"debug_out"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Debug     *bool  `yaml:"debug"`

	// Server
	ServerAddress string `yaml:"server_address"`
	CacheDir      string `yaml:"cache_dir"`
	MaxBodyBytes  *int64 `yaml:"max_body_bytes"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "op2geom", "config.yaml")
}

// LoadConfig reads path. A missing file yields a zero Config; a file that
// exists but does not parse is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if cfg.Debug != nil && !c.IsSet("debug") {
		debug = *cfg.Debug
	}
}

func applyFormatConfig(c *cli.Command, cfg Config) {
	if cfg.Endian != "" && !c.IsSet("endian") {
		endian = cfg.Endian
	}
	if cfg.Precision != "" && !c.IsSet("precision") {
		precision = cfg.Precision
	}
}

func applyDecodeConfig(c *cli.Command, cfg Config) {
	applyFormatConfig(c, cfg)
	if cfg.DebugOut != "" && !c.IsSet("debug-out") {
		debugOut = cfg.DebugOut
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr, cacheDir *string, maxBody *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.CacheDir != "" && !c.IsSet("cache-dir") {
		*cacheDir = cfg.CacheDir
	}
	if cfg.MaxBodyBytes != nil && !c.IsSet("max-body") {
		*maxBody = *cfg.MaxBodyBytes
	}
}
