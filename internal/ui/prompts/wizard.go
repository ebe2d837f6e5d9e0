package prompts

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hance08/bankcore/internal/constants"
)

// InitSettings are the answers of the first-run wizard.
type InitSettings struct {
	LogDriver string
	Workers   int
}

func PromptInitSettings(defaults InitSettings) (InitSettings, error) {
	driver := defaults.LogDriver
	workers := strconv.Itoa(defaults.Workers)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to bankcore! This is the first execute, where should the transaction log live?").
				Description("The log is what recovery replays after a crash.").
				Options(
					huh.NewOption("SQLite table (same database file)", constants.LogDriverSQLite),
					huh.NewOption("Plain text file (transactions.log)", constants.LogDriverFile),
				).
				Value(&driver),
			huh.NewInput().
				Title("How many workers should process transfers?").
				Value(&workers).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("workers must be a whole number >= 1")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return InitSettings{}, err
	}

	n, _ := strconv.Atoi(strings.TrimSpace(workers))
	return InitSettings{LogDriver: driver, Workers: n}, nil
}
