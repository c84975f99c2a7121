package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line prompts on a plain reader/writer pair, one answer per line.
// It is used for pipes, CI and tests.
type Line struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLine creates a line prompter reading answers from in and writing
// questions to out
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewScanner(in), out: out}
}

// Input asks a free-text question
func (l *Line) Input(ctx context.Context, title, description string) (string, error) {
	if description != "" {
		fmt.Fprintf(l.out, "%s\n  %s\n> ", title, description)
	} else {
		fmt.Fprintf(l.out, "%s\n> ", title)
	}
	return l.read(ctx)
}

// Confirm asks a yes/no question until a valid answer is given
func (l *Line) Confirm(ctx context.Context, title string) (bool, error) {
	for {
		fmt.Fprintf(l.out, "%s [y/n]\n> ", title)
		answer, err := l.read(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(l.out, "Please answer yes or no.")
	}
}

// Select asks for one option by name or 1-based number
func (l *Line) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}
	for {
		l.list(title, options)
		answer, err := l.read(ctx)
		if err != nil {
			return "", err
		}
		if choice, ok := pick(options, answer); ok {
			return choice, nil
		}
		fmt.Fprintf(l.out, "Unknown option %q.\n", answer)
	}
}

// MultiSelect asks for a comma separated list of options
func (l *Line) MultiSelect(ctx context.Context, title string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}
	for {
		l.list(title+" (comma separated)", options)
		answer, err := l.read(ctx)
		if err != nil {
			return nil, err
		}

		var selected []string
		valid := true
		for _, part := range strings.Split(answer, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			choice, ok := pick(options, part)
			if !ok {
				fmt.Fprintf(l.out, "Unknown option %q.\n", part)
				valid = false
				break
			}
			selected = append(selected, choice)
		}
		if valid {
			return selected, nil
		}
	}
}

func (l *Line) list(title string, options []string) {
	fmt.Fprintln(l.out, title)
	for i, opt := range options {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(l.out, "> ")
}

// read returns the next trimmed line. End of input halts the session.
func (l *Line) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrHalted
	}
	answer := strings.TrimSpace(l.in.Text())
	if strings.EqualFold(answer, HaltWord) {
		return "", ErrHalted
	}
	return answer, nil
}

func pick(options []string, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, opt := range options {
		if strings.EqualFold(opt, answer) {
			return opt, true
		}
	}
	return "", false
}
