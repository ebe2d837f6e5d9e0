package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption returns a survey option that sets the question icon to "-"
// so survey prompts line up with the huh ones.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// Ask runs survey questions with the application's prompt style.
func Ask(questions []*survey.Question, answers interface{}) error {
	return survey.Ask(questions, answers, IconOption(), survey.WithValidator(survey.Required))
}
