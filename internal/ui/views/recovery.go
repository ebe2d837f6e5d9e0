package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/service"
	"github.com/hance08/bankcore/internal/utils"
)

func RenderRecovery(result *service.RecoveryResult) error {
	pterm.DefaultSection.Println("Recovery")

	tableData := pterm.TableData{{"Transaction", "From", "To", "Amount", "Action"}}
	for _, req := range result.Repairs {
		tableData = append(tableData, requestRow(req, pterm.Yellow("resume credit")))
	}
	for _, req := range result.Pending {
		tableData = append(tableData, requestRow(req, "run"))
	}
	for _, id := range result.Completed {
		tableData = append(tableData, []string{fmt.Sprintf("%d", id), "", "", "", pterm.Gray("already complete")})
	}

	if len(tableData) > 1 {
		if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
			return err
		}
	}

	for _, s := range result.Skipped {
		pterm.Warning.Printf("Skipped log record (%s): %s\n", s.Reason, s.Record)
	}

	pterm.Info.Printf("%d to repair, %d pending, %d complete, %d records skipped\n",
		len(result.Repairs), len(result.Pending), len(result.Completed), len(result.Skipped))
	return nil
}

func requestRow(req *model.Request, action string) []string {
	return []string{
		fmt.Sprintf("%d", req.TransactionID),
		fmt.Sprintf("%d", req.From),
		fmt.Sprintf("%d", req.To),
		utils.FormatFromCents(req.Amount),
		action,
	}
}
