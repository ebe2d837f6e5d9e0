package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/internal/utils"
)

func RenderAccountSuccess(acc *model.Account) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Balance"), utils.FormatFromCents(acc.Balance)},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account opened successfully!\n")

	return nil
}

func RenderImportSuccess(path string, count int) {
	ui.Separator()
	pterm.Success.Printf("Imported %d accounts from %s\n", count, path)
}
