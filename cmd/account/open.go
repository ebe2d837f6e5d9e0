package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/ui/prompts"
	"github.com/hance08/bankcore/internal/ui/views"
	"github.com/hance08/bankcore/internal/validation"
)

type OpenCommandRunner struct {
	app *app.App
}

func NewOpenCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "open [id] [balance]",
		Short: "Open a new account.",
		Long: `Open a new account with an opening balance in cents.
Without arguments you are prompted for both values.

Example: bankcore account open 1 10000`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &OpenCommandRunner{
				app: application,
			}
			return runner.Run(cmd, args)
		},
	}
}

func (r *OpenCommandRunner) Run(cmd *cobra.Command, args []string) error {
	var (
		id, balance int64
		err         error
	)

	if len(args) == 0 {
		id, balance, err = prompts.PromptNewAccount()
		if err != nil {
			return err
		}
	} else {
		if id, err = validation.ParseAccountID(args[0]); err != nil {
			return err
		}
		if len(args) == 2 {
			if balance, err = validation.ParseBalance(args[1]); err != nil {
				return err
			}
		}
	}

	acc, err := r.app.Service.Account.Open(cmd.Context(), id, balance)
	if err != nil {
		return err
	}

	return views.RenderAccountSuccess(acc)
}
