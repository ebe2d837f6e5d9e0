package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ingest"
	"github.com/hance08/bankcore/internal/ui/views"
)

type ImportCommandRunner struct {
	app *app.App
}

func NewImportCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create accounts from a seed file.",
		Long: `Create accounts from a file with one "<id> <balance>" pair per line.
Either every account is created or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ImportCommandRunner{
				app: application,
			}
			return runner.Run(cmd, args[0])
		},
	}
}

func (r *ImportCommandRunner) Run(cmd *cobra.Command, path string) error {
	accounts, err := ingest.LoadAccounts(path)
	if err != nil {
		return err
	}

	if err := r.app.Service.Account.Import(cmd.Context(), accounts); err != nil {
		return err
	}

	views.RenderImportSuccess(path, len(accounts))
	return nil
}
