package guide

import (
	"github.com/charmbracelet/glamour"

	"github.com/philippart-s/ai-skills/internal/errors"
)

// Style selects how markdown is rendered
type Style string

const (
	StyleAuto  Style = "auto"
	StyleDark  Style = "dark"
	StyleLight Style = "light"
	StylePlain Style = "plain"
)

// ParseStyle maps a config value to a Style, defaulting to auto
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleDark, StyleLight, StylePlain:
		return Style(s)
	default:
		return StyleAuto
	}
}

// Render formats markdown for a terminal. StylePlain returns it unchanged.
func Render(markdown string, style Style, width int) (string, error) {
	if style == StylePlain {
		return markdown, nil
	}
	if width <= 0 {
		width = 80
	}

	opt := glamour.WithAutoStyle()
	if style == StyleDark || style == StyleLight {
		opt = glamour.WithStandardStyle(string(style))
	}

	renderer, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeGuideRender, "create markdown renderer", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeGuideRender, "render markdown", err)
	}
	return out, nil
}
