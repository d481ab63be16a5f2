package ui

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// InputGroup builds a single-input form group. A nil validate skips
// input validation.
func InputGroup(title, placeholder, description string, validate func(string) error, value *string) *huh.Group {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Description(description).
		Value(value)
	if validate != nil {
		input.Validate(validate)
	}
	return huh.NewGroup(input)
}

// ConfirmGroup builds a yes/no form group with custom button labels.
func ConfirmGroup(title, description, yes, no string, value *bool) *huh.Group {
	return huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative(yes).
			Negative(no).
			Value(value),
	)
}

// InputForm wraps InputGroup in a standalone form.
func InputForm(title, placeholder, description string, validate func(string) error, value *string) *huh.Form {
	return huh.NewForm(InputGroup(title, placeholder, description, validate, value))
}

// ConfirmForm wraps ConfirmGroup in a standalone form.
func ConfirmForm(title, description, yes, no string, value *bool) *huh.Form {
	return huh.NewForm(ConfirmGroup(title, description, yes, no, value))
}

// StagePicker builds a select form over workflow stages. The selected
// value is the zero-based step index as a decimal string.
func StagePicker(title, description string, steps []string, value *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(steps))
	for i, name := range steps {
		options = append(options, huh.NewOption(name, strconv.Itoa(i)))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(description).
			Options(options...).
			Value(value),
	))
}
