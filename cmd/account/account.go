package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
)

func NewAccountCmd(application *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Open, import and list accounts.",
		Long:  `Open single accounts, import a seed file of accounts, and show every account with its balance.`,
	}

	accountCmd.AddCommand(NewListCmd(application))
	accountCmd.AddCommand(NewOpenCmd(application))
	accountCmd.AddCommand(NewImportCmd(application))

	return accountCmd
}
