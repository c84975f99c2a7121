package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Form prompts with huh forms
type Form struct{}

// NewForm creates a terminal form prompter
func NewForm() *Form {
	return &Form{}
}

// Input displays a text input. Answering "halt" stops the session.
func (f *Form) Input(ctx context.Context, title, description string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)

	if err := run(ctx, huh.NewForm(huh.NewGroup(input))); err != nil {
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(value), HaltWord) {
		return "", ErrHalted
	}
	return value, nil
}

// Confirm displays a yes/no confirmation
func (f *Form) Confirm(ctx context.Context, title string) (bool, error) {
	var confirmed bool

	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := run(ctx, huh.NewForm(huh.NewGroup(confirm))); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Select displays a single choice list
func (f *Form) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	var selected string
	selectField := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&selected)

	if err := run(ctx, huh.NewForm(huh.NewGroup(selectField))); err != nil {
		return "", err
	}
	return selected, nil
}

// MultiSelect displays a multiple choice list
func (f *Form) MultiSelect(ctx context.Context, title string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}

	var selected []string
	multiSelect := huh.NewMultiSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&selected)

	if err := run(ctx, huh.NewForm(huh.NewGroup(multiSelect))); err != nil {
		return nil, err
	}
	return selected, nil
}

func run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted):
		return ErrHalted
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("prompt failed: %w", err)
	}
}
