package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/utils"
)

type AccountListView struct {
	Title string
}

func NewAccountListView(title string) *AccountListView {
	return &AccountListView{Title: title}
}

func (v *AccountListView) Render(accounts []model.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Balance"}}

	var total int64
	for _, acc := range accounts {
		balance := utils.FormatFromCents(acc.Balance)
		if acc.Balance == 0 {
			balance = pterm.Gray(balance)
		} else {
			balance = pterm.Green(balance)
		}
		tableData = append(tableData, []string{fmt.Sprintf("%d", acc.ID), balance})
		total += acc.Balance
	}

	pterm.DefaultSection.Println(v.Title)
	if err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts, %s\n", len(accounts), utils.FormatFromCents(total))

	return nil
}
