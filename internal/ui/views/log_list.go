package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/utils"
)

type LogListView struct{}

func NewLogListView() *LogListView {
	return &LogListView{}
}

// Render prints records oldest first. total is the size of the whole log.
func (v *LogListView) Render(records []model.LogRecord, total int64) error {
	if len(records) == 0 {
		pterm.Warning.Println("Transaction log is empty")
		return nil
	}

	pterm.DefaultSection.Printf("Transaction log (showing %d of %d records)", len(records), total)

	tableData := pterm.TableData{
		{"Seq", "Transaction", "Account", "Pre", "Post", "Change"},
	}

	for _, rec := range records {
		delta := rec.PostBalance - rec.PreBalance
		var change string
		if delta < 0 {
			change = pterm.Red(utils.FormatFromCents(delta))
		} else {
			change = pterm.Green("+" + utils.FormatFromCents(delta))
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", rec.Seq),
			fmt.Sprintf("%d", rec.TransactionID),
			fmt.Sprintf("%d", rec.AccountID),
			utils.FormatFromCents(rec.PreBalance),
			utils.FormatFromCents(rec.PostBalance),
			change,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
