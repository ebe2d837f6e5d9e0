package journal

import (
	"github.com/spf13/cobra"

	"github.com/hance08/bankcore/internal/app"
)

// NewLogCmd groups the transaction log commands.
func NewLogCmd(application *app.App) *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect or reset the transaction log",
		Long:  "Inspect the transaction log that recovery replays, or clear it.",
	}

	logCmd.AddCommand(NewShowCmd(application))
	logCmd.AddCommand(NewClearCmd(application))

	return logCmd
}
