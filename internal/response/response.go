package response

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Response is one structured reply to the human: step name, actions taken,
// a technical-detail block, a validation prompt and a progress summary.
type Response struct {
	Step             string   `json:"step" yaml:"step"`
	Actions          []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Details          string   `json:"details,omitempty" yaml:"details,omitempty"`
	ValidationPrompt string   `json:"validation_prompt,omitempty" yaml:"validation_prompt,omitempty"`
	Summary          []string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Section headings of the template
const (
	StepHeading       = "📍 Step"
	ActionsHeading    = "Actions"
	DetailsHeading    = "Technical details"
	ValidationHeading = "✋ Validation"
	SummaryHeading    = "📊 Summary"
)

// Styles contains lipgloss styles for the template
type Styles struct {
	Step    lipgloss.Style
	Heading lipgloss.Style
	Bullet  lipgloss.Style
	Details lipgloss.Style
	Prompt  lipgloss.Style
	Summary lipgloss.Style
}

// DefaultStyles returns the coloured styles
func DefaultStyles() Styles {
	return Styles{
		Step: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")), // Blue
		Bullet: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Details: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			PaddingLeft(2),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		Summary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")), // Green
	}
}

// PlainStyles returns styles that add no colour or padding
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Step:    plain,
		Heading: plain,
		Bullet:  plain,
		Details: plain,
		Prompt:  plain,
		Summary: plain,
	}
}

// Renderer renders responses with a fixed set of styles
type Renderer struct {
	styles Styles
	plain  bool
}

// NewRenderer creates a renderer; plain disables all styling
func NewRenderer(plain bool) *Renderer {
	if plain {
		return &Renderer{styles: PlainStyles(), plain: true}
	}
	return &Renderer{styles: DefaultStyles()}
}

// Render formats r in the response template. Empty sections are omitted,
// the step line is always present.
func (rd *Renderer) Render(r Response) string {
	var b strings.Builder

	b.WriteString(rd.styles.Step.Render("## " + StepHeading + ": " + r.Step))
	b.WriteString("\n")

	if len(r.Actions) > 0 {
		rd.heading(&b, ActionsHeading)
		for _, a := range r.Actions {
			b.WriteString(rd.styles.Bullet.Render("- "+a) + "\n")
		}
	}

	if d := strings.TrimRight(r.Details, "\n"); d != "" {
		rd.heading(&b, DetailsHeading)
		if rd.plain {
			b.WriteString(d + "\n")
		} else {
			b.WriteString(rd.styles.Details.Render(d) + "\n")
		}
	}

	if r.ValidationPrompt != "" {
		rd.heading(&b, ValidationHeading)
		b.WriteString(rd.styles.Prompt.Render(r.ValidationPrompt) + "\n")
	}

	if len(r.Summary) > 0 {
		rd.heading(&b, SummaryHeading)
		for _, s := range r.Summary {
			b.WriteString(rd.styles.Summary.Render(s) + "\n")
		}
	}

	return b.String()
}

func (rd *Renderer) heading(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(rd.styles.Heading.Render("### " + title))
	b.WriteString("\n")
}
