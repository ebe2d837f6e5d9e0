package config

import (
	"fmt"
	"strings"

	"github.com/hance08/bankcore/internal/constants"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Log        LogConfig      `mapstructure:"log"`
	Requests   RequestsConfig `mapstructure:"requests"`
	Workers    WorkersConfig  `mapstructure:"workers"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	Logging    LoggingConfig  `mapstructure:"logging"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig selects where the transaction log lives.
type LogConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type RequestsConfig struct {
	Path string `mapstructure:"path"`
}

type WorkersConfig struct {
	Count      int  `mapstructure:"count"`
	Concurrent bool `mapstructure:"concurrent"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
	Textfile  string `mapstructure:"textfile"`
}

// LoggingConfig configures the diagnostic logger, not the transaction log.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Log:      LogConfig{Driver: constants.LogDriverSQLite, Path: ""},
		Requests: RequestsConfig{Path: constants.DefaultRequestsPath},
		Workers:  WorkersConfig{Count: constants.DefaultWorkers, Concurrent: true},
		Metrics:  MetricsConfig{Namespace: constants.MetricsPrefix},
		Logging:  LoggingConfig{Level: "info", Format: constants.LogFormatColorful},
	}
}

func (c *Config) Validate() error {
	switch c.Log.Driver {
	case constants.LogDriverSQLite, constants.LogDriverFile:
	default:
		return fmt.Errorf("log.driver must be %q or %q, got %q", constants.LogDriverSQLite, constants.LogDriverFile, c.Log.Driver)
	}
	if c.Workers.Count < 1 {
		return fmt.Errorf("workers.count must be at least 1, got %d", c.Workers.Count)
	}
	if !constants.LogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case constants.LogFormatColorful, constants.LogFormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", constants.LogFormatColorful, constants.LogFormatJSON, c.Logging.Format)
	}
	if c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace must not be empty")
	}
	return nil
}
