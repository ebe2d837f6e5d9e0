package errhandler

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

// HandleError prints err for the user. Interactive aborts exit quietly with status 0.
func HandleError(err error) {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted) || strings.Contains(err.Error(), "interrupt") {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	pterm.Error.Println(msg)
}
