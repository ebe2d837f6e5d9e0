package prompts

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/hance08/bankcore/internal/ui"
	"github.com/hance08/bankcore/internal/validation"
)

// PromptNewAccount asks for the id and opening balance (in cents) of a new account.
func PromptNewAccount() (id, balance int64, err error) {
	answers := struct {
		ID      string `survey:"id"`
		Balance string `survey:"balance"`
	}{}

	questions := []*survey.Question{
		{
			Name:     "id",
			Prompt:   &survey.Input{Message: "Account ID:"},
			Validate: validation.ValidateAccountID,
		},
		{
			Name:     "balance",
			Prompt:   &survey.Input{Message: "Opening balance (cents):", Default: "0"},
			Validate: validation.ValidateBalance,
		},
	}

	if err := ui.Ask(questions, &answers); err != nil {
		return 0, 0, err
	}

	if id, err = validation.ParseAccountID(answers.ID); err != nil {
		return 0, 0, err
	}
	if balance, err = validation.ParseBalance(answers.Balance); err != nil {
		return 0, 0, err
	}
	return id, balance, nil
}
