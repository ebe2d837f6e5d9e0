package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/config"
	"github.com/hance08/bankcore/internal/constants"
	"github.com/hance08/bankcore/internal/journal"
	"github.com/hance08/bankcore/internal/metrics"
	"github.com/hance08/bankcore/internal/service"
	"github.com/hance08/bankcore/internal/store"
	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/migrations"
)

type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Repository
	Log     journal.Log
	Logger  *pterm.Logger
	Metrics *metrics.Metrics

	DBPath  string
	LogPath string // empty for the sqlite driver
}

// NewApp initialize config, database, transaction log and core logic, then return App entity
func NewApp(cfg *config.Config) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath, logPath, err := ResolvePaths(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := ui.NewLogger(cfg.Logging)

	dbStore, err := store.NewStore(dbPath, migrations.FS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var txLog journal.Log
	switch cfg.Log.Driver {
	case constants.LogDriverFile:
		txLog, err = journal.OpenFileLog(logPath, logger)
		if err != nil {
			_ = dbStore.Close()
			return nil, nil, fmt.Errorf("failed to open transaction log: %w", err)
		}
	default:
		txLog = journal.NewSQLLog(dbStore)
		logPath = ""
	}

	m := metrics.NewMetrics(cfg.Metrics.Namespace)

	svc := service.NewService(dbStore, txLog, service.Config{
		Workers:    cfg.Workers.Count,
		Concurrent: cfg.Workers.Concurrent,
	}, logger, m)

	cleanup := func() {
		if cfg.Metrics.Textfile != "" {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Error("failed to write metrics", logger.Args("path", cfg.Metrics.Textfile, "error", err))
			}
		}
		if err := txLog.Close(); err != nil {
			fmt.Printf("Error closing transaction log: %v\n", err)
		}
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Config:  cfg,
		Service: svc,
		Store:   dbStore,
		Log:     txLog,
		Logger:  logger,
		Metrics: m,
		DBPath:  dbPath,
		LogPath: logPath,
	}, cleanup, nil
}

// LogRecordCount reports how many records the transaction log holds.
func (a *App) LogRecordCount(ctx context.Context) (int64, error) {
	if a.LogPath == "" {
		return a.Store.CountLogRecords(ctx)
	}
	records, err := a.Log.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

// ResolvePaths returns the database and file-log paths, defaulting both into
// the application data directory.
func ResolvePaths(cfg *config.Config) (dbPath, logPath string, err error) {
	dbPath, err = ExpandPath(cfg.Database.Path)
	if err != nil {
		return "", "", err
	}
	logPath, err = ExpandPath(cfg.Log.Path)
	if err != nil {
		return "", "", err
	}

	if dbPath == "" || logPath == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", "", err
		}
		if dbPath == "" {
			dbPath = filepath.Join(appDir, constants.DBFileName)
		}
		if logPath == "" {
			logPath = filepath.Join(appDir, constants.LogFileName)
		}
	}
	return dbPath, logPath, nil
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if path[1] == '/' || path[1] == '\\' {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
