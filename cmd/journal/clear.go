package journal

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/internal/ui/prompts"
)

type clearRunner struct {
	app *app.App
	yes bool
}

func NewClearCmd(application *app.App) *cobra.Command {
	runner := &clearRunner{app: application}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record in the transaction log",
		Long: `Delete every record in the transaction log.

Only do this when no request is pending: recovery can no longer tell which
requests already ran, so rerunning an old request file would apply them again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd)
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *clearRunner) Run(cmd *cobra.Command) error {
	if !r.yes {
		confirmed, err := prompts.PromptConfirm("Clear the whole transaction log?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Transaction log left unchanged")
			return nil
		}
	}

	if err := r.app.Log.Clear(cmd.Context()); err != nil {
		return err
	}

	pterm.Success.Println("Transaction log cleared")
	ui.Separator()
	return nil
}
