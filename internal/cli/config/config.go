package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"wan/internal/wandbox"
	appErr "wan/pkg/errors"
	"wan/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = wandbox.DefaultBaseURL
	DefaultCompiler  = wandbox.DefaultCompiler
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
	DefaultLogOutput = "stderr"
)

// Config holds CLI configuration. JSON documents parse as well, so the
// historical config.json keeps working.
type Config struct {
	BaseURL     string        `yaml:"url"`
	Compiler    string        `yaml:"compiler"`
	Logger      logger.Config `yaml:"logger"`
	HistoryFile string        `yaml:"historyFile"`
}

// DefaultPath is <user config dir>/wan/config.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".config", "wan", "config.json")
	}
	return filepath.Join(dir, "wan", "config.json")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

// Load reads path. A missing file yields defaults; an unreadable file is an
// IoError and an unparsable one a ConfigError.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return cfg, appErr.IoFailure(err, path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, appErr.Wrapf(err, appErr.ConfigError, "parse config file %s failed: %v", path, err).
			WithDetail("path", path)
	}
	applyDefaults(&cfg)
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Compiler == "" {
		cfg.Compiler = DefaultCompiler
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLogLevel
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = DefaultLogFormat
	}
	if cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = DefaultLogOutput
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(filepath.Dir(DefaultPath()), "history")
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
