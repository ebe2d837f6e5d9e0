package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ui/views"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, transaction log and worker settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
			}

			return runner.Run(cmd)
		},
	}
}

func (r *infoRunner) Run(cmd *cobra.Command) error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbExists := false
	if _, err := os.Stat(r.app.DBPath); err == nil {
		dbExists = true
	}

	accounts, err := r.app.Service.Account.GetAllAccounts(cmd.Context())
	if err != nil {
		return err
	}
	records, err := r.app.LogRecordCount(cmd.Context())
	if err != nil {
		return err
	}

	items := views.SystemInfoItem{
		ConfigPath: configPath,
		DBPath:     r.app.DBPath,
		DBExists:   dbExists,
		LogDriver:  cfg.Log.Driver,
		LogPath:    r.app.LogPath,
		LogRecords: records,
		Accounts:   len(accounts),
		Workers:    cfg.Workers.Count,
		Concurrent: cfg.Workers.Concurrent,
		AppDataDir: getAppDataDirOrUnknown(),
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
