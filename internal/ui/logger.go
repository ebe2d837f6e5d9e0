package ui

import (
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/config"
	"github.com/hance08/bankcore/internal/constants"
)

var logLevels = map[string]pterm.LogLevel{
	"trace": pterm.LogLevelTrace,
	"debug": pterm.LogLevelDebug,
	"info":  pterm.LogLevelInfo,
	"warn":  pterm.LogLevelWarn,
	"error": pterm.LogLevelError,
}

// NewLogger builds the structured logger shared by the engine, the
// reconciler and the worker pool. It writes to stderr so reports on stdout
// stay clean.
func NewLogger(cfg config.LoggingConfig) *pterm.Logger {
	level, ok := logLevels[strings.ToLower(cfg.Level)]
	if !ok {
		level = pterm.LogLevelInfo
	}

	formatter := pterm.LogFormatterColorful
	if cfg.Format == constants.LogFormatJSON {
		formatter = pterm.LogFormatterJSON
	}

	return pterm.DefaultLogger.
		WithLevel(level).
		WithFormatter(formatter).
		WithWriter(os.Stderr)
}
