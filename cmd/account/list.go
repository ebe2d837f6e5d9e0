package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/ui/views"
)

type ListCommandRunner struct {
	app *app.App
}

func NewListCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts with their balances",
		Long:  `List every account in the database with its persisted balance, ordered by id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				app: application,
			}
			return runner.Run(cmd)
		},
	}
}

func (r *ListCommandRunner) Run(cmd *cobra.Command) error {
	accounts, err := r.app.Service.Account.GetAllAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	rows := make([]model.Account, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, *acc)
	}

	return views.NewAccountListView("Account List").Render(rows)
}
