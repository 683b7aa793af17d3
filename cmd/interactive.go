package cmd

import (
	"github.com/AlecAivazis/survey/v2"
)

// ask is swapped out in tests, survey needs a terminal.
var ask = func(prompt survey.Prompt, response interface{}) error {
	return survey.AskOne(prompt, response)
}

// interactiveFilter offers the paths accepted by eligible in a multi-select
// prompt and returns the chosen ones in their original order.
func interactiveFilter(message string, paths []string, eligible func(string) bool) ([]string, error) {
	var options []string
	for _, path := range paths {
		if eligible(path) {
			options = append(options, path)
		}
	}

	if len(options) == 0 {
		return nil, nil
	}

	var selected []int
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
	}

	if err := ask(prompt, &selected); err != nil {
		return nil, err
	}

	filtered := make([]string, len(selected))
	for i, index := range selected {
		filtered[i] = options[index]
	}

	return filtered, nil
}
