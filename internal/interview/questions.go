package interview

import "github.com/philippart-s/ai-skills/internal/detect"

// Question IDs referenced outside this package
const (
	StackQuestionID = "stack"
	GoalQuestionID  = "goal"
	BuildQuestionID = "quarkus-build"
	NoStack         = "none"
)

var commonQuestions = []Question{
	{
		ID:       GoalQuestionID,
		Type:     QuestionTypeText,
		Text:     "What do you want to build or change?",
		Required: true,
	},
	{
		ID:          "scope",
		Type:        QuestionTypeText,
		Text:        "Which parts of the code may be modified?",
		Description: "Files, packages or modules. Anything else stays untouched.",
		Required:    true,
	},
	{
		ID:   "constraints",
		Type: QuestionTypeText,
		Text: "Any constraints (versions, libraries, coding style)?",
	},
	{
		ID:       "tests",
		Type:     QuestionTypeYesNo,
		Text:     "Should the change include tests?",
		Required: true,
	},
	{
		ID:     "test-scope",
		Type:   QuestionTypeText,
		Text:   "What should the tests cover?",
		SkipIf: "tests=no",
	},
}

var flagQuestions = map[detect.Flag][]Question{
	detect.Quarkus: {
		{
			ID:       BuildQuestionID,
			Type:     QuestionTypeChoice,
			Text:     "Which build tool does the Quarkus project use?",
			Required: true,
			Choices:  []string{"maven", "gradle"},
		},
		{
			ID:   "quarkus-extensions",
			Type: QuestionTypeText,
			Text: "Which Quarkus extensions are involved?",
		},
	},
	detect.JBang: {
		{
			ID:       "jbang-script",
			Type:     QuestionTypeText,
			Text:     "Which script is the entry point?",
			Required: true,
		},
	},
	detect.LangChain4j: {
		{
			ID:       "langchain4j-provider",
			Type:     QuestionTypeChoice,
			Text:     "Which model provider should LangChain4j use?",
			Required: true,
			Choices:  []string{"openai", "ollama", "mistral", "anthropic", "other"},
		},
	},
}

// Questions builds the gathering question list for a flag set.
// An empty set puts the required stack clarification first.
func Questions(flags detect.FlagSet) []Question {
	var out []Question

	if flags.Empty() {
		choices := make([]string, 0, len(detect.AllFlags)+1)
		for _, f := range detect.AllFlags {
			choices = append(choices, string(f))
		}
		choices = append(choices, NoStack)

		out = append(out, Question{
			ID:          StackQuestionID,
			Type:        QuestionTypeMulti,
			Text:        "No Quarkus, JBang or LangChain4j marker was found. Which of these does the project use?",
			Description: "Pick every stack that applies, or none.",
			Required:    true,
			Choices:     choices,
		})
	}

	out = append(out, commonQuestions...)
	return append(out, FlagQuestions(flags)...)
}

// FlagQuestions returns the stack-specific questions for flags
func FlagQuestions(flags detect.FlagSet) []Question {
	var out []Question
	for _, f := range detect.AllFlags {
		if flags.Has(f) {
			out = append(out, flagQuestions[f]...)
		}
	}
	return out
}
