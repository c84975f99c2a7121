package interview

import (
	"fmt"
	"strings"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
)

// Engine walks the gathering questions in order
type Engine struct {
	questions []Question
	answers   map[string]Answer
	skipped   map[string]bool
	current   int
}

// NewEngine creates an engine for the questions of a flag set
func NewEngine(flags detect.FlagSet) *Engine {
	return NewEngineWithQuestions(Questions(flags))
}

// NewEngineWithQuestions creates an engine over an explicit question list
func NewEngineWithQuestions(questions []Question) *Engine {
	e := &Engine{
		questions: questions,
		answers:   make(map[string]Answer),
		skipped:   make(map[string]bool),
	}
	e.skipForward()
	return e
}

// CurrentQuestion returns the current question, or nil when complete
func (e *Engine) CurrentQuestion() *Question {
	if e.IsComplete() {
		return nil
	}
	return &e.questions[e.current]
}

// Answer validates and records an answer to the current question, then
// returns the next question (nil when the interview is complete).
// An invalid answer leaves the engine on the same question.
func (e *Engine) Answer(answer Answer) (*Question, error) {
	q := e.CurrentQuestion()
	if q == nil {
		return nil, errors.New(errors.ErrCodeInterviewCompleted, "interview already completed")
	}

	if err := validateAnswer(q, &answer); err != nil {
		return q, err
	}

	answer.QuestionID = q.ID
	if !answer.Empty() {
		e.answers[q.ID] = answer
	}

	if q.ID == StackQuestionID {
		if flags, ok := e.Clarified(); ok {
			e.questions = append(e.questions, FlagQuestions(flags)...)
		}
	}

	e.current++
	e.skipForward()
	return e.CurrentQuestion(), nil
}

// skipForward advances past questions whose SkipIf condition holds
func (e *Engine) skipForward() {
	for e.current < len(e.questions) && e.shouldSkip(&e.questions[e.current]) {
		e.skipped[e.questions[e.current].ID] = true
		e.current++
	}
}

func (e *Engine) shouldSkip(q *Question) bool {
	if q.SkipIf == "" {
		return false
	}

	parts := strings.SplitN(q.SkipIf, "=", 2)
	if len(parts) != 2 {
		return false
	}

	answer, exists := e.answers[parts[0]]
	if !exists {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer.Value), strings.TrimSpace(parts[1]))
}

func validateAnswer(q *Question, a *Answer) error {
	a.Value = strings.TrimSpace(a.Value)

	if q.Type == QuestionTypeMulti && len(a.Values) == 0 && a.Value != "" {
		for _, v := range strings.FieldsFunc(a.Value, func(r rune) bool { return r == ',' || r == '\n' }) {
			if v = strings.TrimSpace(v); v != "" {
				a.Values = append(a.Values, v)
			}
		}
		a.Value = ""
	}

	if a.Empty() {
		if q.Required {
			return errors.NewInterviewAnswerRequiredError(q.Text)
		}
		return nil
	}

	switch q.Type {
	case QuestionTypeYesNo:
		normalized := strings.ToLower(a.Value)
		switch normalized {
		case "y", "yes":
			a.Value = "yes"
		case "n", "no":
			a.Value = "no"
		default:
			return errors.NewInterviewAnswerInvalidError(q.Text, "yes or no")
		}

	case QuestionTypeChoice:
		choice, ok := matchChoice(q.Choices, a.Value)
		if !ok {
			return errors.NewInterviewAnswerInvalidError(q.Text, strings.Join(q.Choices, ", "))
		}
		a.Value = choice

	case QuestionTypeMulti:
		if len(q.Choices) == 0 {
			return nil
		}
		seen := make(map[string]bool, len(a.Values))
		values := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			choice, ok := matchChoice(q.Choices, v)
			if !ok {
				return errors.NewInterviewAnswerInvalidError(q.Text, strings.Join(q.Choices, ", "))
			}
			if !seen[choice] {
				seen[choice] = true
				values = append(values, choice)
			}
		}
		if seen[NoStack] && len(values) > 1 {
			return errors.NewInterviewAnswerInvalidError(q.Text, fmt.Sprintf("%q on its own or a list of stacks", NoStack))
		}
		a.Values = values
	}

	return nil
}

// matchChoice accepts a choice by name (case-insensitive) or 1-based index
func matchChoice(choices []string, value string) (string, bool) {
	value = strings.TrimSpace(value)
	for i, c := range choices {
		if strings.EqualFold(c, value) || fmt.Sprint(i+1) == value {
			return c, true
		}
	}
	return "", false
}

// Progress returns the completion percentage
func (e *Engine) Progress() float64 {
	if len(e.questions) == 0 {
		return 100.0
	}
	return float64(e.current) / float64(len(e.questions)) * 100.0
}

// IsComplete returns true once every question was answered or skipped
func (e *Engine) IsComplete() bool {
	return e.current >= len(e.questions)
}

// Missing returns the IDs of required questions without an answer
func (e *Engine) Missing() []string {
	var missing []string
	for _, q := range e.questions {
		if !q.Required || e.skipped[q.ID] {
			continue
		}
		if _, ok := e.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Answers returns a copy of the recorded answers
func (e *Engine) Answers() map[string]Answer {
	out := make(map[string]Answer, len(e.answers))
	for k, v := range e.answers {
		out[k] = v
	}
	return out
}

// Value returns the single-valued answer for id
func (e *Engine) Value(id string) string {
	return e.answers[id].Value
}

// Questions returns the question list
func (e *Engine) Questions() []Question {
	return e.questions
}

// HasClarification reports whether the stack question exists in this interview
func (e *Engine) HasClarification() bool {
	for _, q := range e.questions {
		if q.ID == StackQuestionID {
			return true
		}
	}
	return false
}

// Clarified returns the stacks named in the clarification answer.
// ok is false until the question has been answered.
func (e *Engine) Clarified() (flags detect.FlagSet, ok bool) {
	answer, exists := e.answers[StackQuestionID]
	if !exists {
		return nil, false
	}

	flags = detect.NewFlagSet()
	for _, v := range answer.Values {
		if f, err := detect.ParseFlag(v); err == nil {
			flags[f] = struct{}{}
		}
	}
	return flags, true
}
