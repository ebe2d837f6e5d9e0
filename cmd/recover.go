package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ingest"
	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/internal/ui/views"
)

type recoverRunner struct {
	app      *app.App
	requests string
}

func NewRecoverCmd(application *app.App) *cobra.Command {
	runner := &recoverRunner{app: application}

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Show what the next run would repair, without changing anything",
		Long: `Replay the transaction log against the current balances and classify
every request as already complete, interrupted after its debit, or not yet
started. Nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&runner.requests, "requests", "r", "", "Request file (defaults to requests.path in config)")

	return cmd
}

func (r *recoverRunner) Run(cmd *cobra.Command) error {
	path := r.requests
	if path == "" {
		path = r.app.Config.Requests.Path
	}
	requests, err := ingest.LoadRequests(path)
	if err != nil {
		return err
	}

	result, err := r.app.Service.Recover(cmd.Context(), requests)
	if err != nil {
		return err
	}
	ui.PrintL2Title("Recovery plan for %s", path)
	return views.RenderRecovery(result)
}
