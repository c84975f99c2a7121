package interview

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeText   QuestionType = "text"
	QuestionTypeMulti  QuestionType = "multi"
	QuestionTypeYesNo  QuestionType = "yesno"
	QuestionTypeChoice QuestionType = "choice"
)

// Question represents a single information-gathering question
type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Text        string       `json:"text" yaml:"text"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Choices     []string     `json:"choices,omitempty" yaml:"choices,omitempty"`
	SkipIf      string       `json:"skip_if,omitempty" yaml:"skip_if,omitempty"` // "question-id=value"
}

// Answer represents an answer to a question
type Answer struct {
	QuestionID string   `json:"question_id" yaml:"question_id"`
	Value      string   `json:"value,omitempty" yaml:"value,omitempty"`
	Values     []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Empty reports whether the answer carries no content
func (a Answer) Empty() bool {
	return a.Value == "" && len(a.Values) == 0
}
