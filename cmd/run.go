package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ingest"
	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/internal/ui/views"
)

type runFlags struct {
	Requests   string
	Workers    int
	Sequential bool
}

type runRunner struct {
	app   *app.App
	flags *runFlags
}

func NewRunCmd(application *app.App) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Recover, then process every pending transfer request",
		Long: `Load the accounts, replay the transaction log against them, finish
transfers interrupted by the last crash and then process the remaining
requests from the request file.

Example: bankcore run --requests requests.txt --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &runRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.Requests, "requests", "r", "", "Request file (defaults to requests.path in config)")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of workers (defaults to workers.count in config)")
	cmd.Flags().BoolVar(&flags.Sequential, "sequential", false, "Process requests one at a time")

	return cmd
}

func (r *runRunner) Run(cmd *cobra.Command) error {
	cfg := r.app.Config
	if r.flags.Workers > 0 {
		cfg.Workers.Count = r.flags.Workers
	}
	if r.flags.Sequential {
		cfg.Workers.Concurrent = false
	}
	r.app.Service.SetWorkers(cfg.Workers.Count, cfg.Workers.Concurrent)

	path := r.flags.Requests
	if path == "" {
		path = cfg.Requests.Path
	}
	requests, err := ingest.LoadRequests(path)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	ui.PrintL1Title("bankcore run")
	report, runErr := r.app.Service.Run(ctx, requests)
	if report == nil {
		return runErr
	}

	if err := views.NewAccountListView("Balances before").Render(report.Before); err != nil {
		return err
	}
	if err := views.RenderRecovery(report.Recovery); err != nil {
		return err
	}
	if err := views.RenderRunSummary(report); err != nil {
		return err
	}
	if err := views.NewAccountListView("Balances after").Render(report.After); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d transfers failed; run again to recover them", failed)
	}
	return nil
}
