package views

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/hance08/bankcore/internal/model"
	"github.com/hance08/bankcore/internal/service"
)

// RenderRunSummary prints the outcome of every request handled in a run,
// repairs first, then the rest ordered by transaction id.
func RenderRunSummary(report *service.RunReport) error {
	pterm.DefaultSection.Println("Run Summary")

	results := append([]service.Result(nil), report.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].TransactionID < results[j].TransactionID })

	tableData := pterm.TableData{{"Transaction", "Phase", "Outcome", "Detail"}}
	for _, r := range report.Repaired {
		tableData = append(tableData, resultRow(r, "repair"))
	}
	for _, r := range results {
		tableData = append(tableData, resultRow(r, fmt.Sprintf("worker %d", r.WorkerID)))
	}

	if len(tableData) > 1 {
		if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
			return err
		}
	}

	s := report.Stats
	pterm.Info.Printf("%d applied, %d rejected, %d failed by %d workers\n", s.Completed, s.Rejected, s.Failed, s.Workers)
	if s.Pending > 0 {
		pterm.Warning.Printf("%d requests were not started\n", s.Pending)
	}
	if failed := report.Failed() - int(s.Failed); failed > 0 {
		pterm.Warning.Printf("%d interrupted transfers could not be repaired\n", failed)
	}
	if report.Failed() == 0 {
		pterm.Success.Println("All accepted transfers are durable")
	}
	return nil
}

func resultRow(r service.Result, phase string) []string {
	var outcome, detail string
	switch r.Outcome {
	case model.OutcomeApplied:
		outcome = pterm.Green(r.Outcome.String())
	case model.OutcomeRejected:
		outcome = pterm.Yellow(r.Outcome.String())
	default:
		outcome = pterm.Red(r.Outcome.String())
	}
	if r.Err != nil {
		detail = r.Err.Error()
	}
	return []string{fmt.Sprintf("%d", r.TransactionID), phase, outcome, detail}
}
