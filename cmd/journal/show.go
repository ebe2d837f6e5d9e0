package journal

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/constants"
	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/ui/views"
)

type showRunner struct {
	app   *app.App
	limit int
}

func NewShowCmd(application *app.App) *cobra.Command {
	runner := &showRunner{app: application}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the most recent log records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd)
		},
	}

	cmd.Flags().IntVarP(&runner.limit, "limit", "n", constants.DefaultLimit, "Number of records to show (0 for all)")

	return cmd
}

func (r *showRunner) Run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var (
		records []model.LogRecord
		total   int64
		err     error
	)

	if r.app.LogPath == "" && r.limit > 0 {
		if records, err = r.app.Store.GetRecentLogRecords(ctx, r.limit); err != nil {
			return err
		}
		if total, err = r.app.Store.CountLogRecords(ctx); err != nil {
			return err
		}
		// newest first from the store
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	} else {
		if records, err = r.app.Log.ReadAll(ctx); err != nil {
			return err
		}
		total = int64(len(records))
		if r.limit > 0 && len(records) > r.limit {
			records = records[len(records)-r.limit:]
		}
	}

	return views.NewLogListView().Render(records, total)
}
