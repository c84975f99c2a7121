package plan

import (
	"fmt"
	"strings"

	"github.com/philippart-s/ai-skills/internal/detect"
	"github.com/philippart-s/ai-skills/internal/errors"
)

// BuildTool selects the suggested command syntax
type BuildTool string

const (
	Maven  BuildTool = "maven"
	Gradle BuildTool = "gradle"
)

// ParseBuildTool validates a build tool name. Empty means Maven.
func ParseBuildTool(s string) (BuildTool, error) {
	switch t := BuildTool(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return Maven, nil
	case Maven, Gradle:
		return t, nil
	default:
		return "", errors.New(errors.ErrCodePlanBuildTool, fmt.Sprintf("unknown build tool: %q", s)).
			WithSuggestion("Use maven or gradle")
	}
}

// GenerateOptions contains options for plan drafting
type GenerateOptions struct {
	Flags     detect.FlagSet
	Goal      string
	BuildTool BuildTool
}

// Generate drafts a plan from the active flags. The draft is a proposal:
// the human edits or approves it before Implementation starts.
func Generate(opts GenerateOptions) *Plan {
	goal := strings.TrimSpace(opts.Goal)
	if goal == "" {
		goal = "the requested change"
	}
	tool := opts.BuildTool
	if tool == "" {
		tool = Maven
	}

	steps := []Step{{
		ID:          "analyse",
		Title:       "Analyse the existing code",
		Description: fmt.Sprintf("Read the relevant sources and confirm the scope of %s.", goal),
	}}

	if opts.Flags.Has(detect.Quarkus) {
		steps = append(steps, Step{
			ID:          "quarkus-setup",
			Title:       "Add the required Quarkus extensions",
			Description: "List the extensions the change needs and add them through the Quarkus tooling.",
			Commands:    []string{quarkusCmd(tool, "add-extension"), quarkusCmd(tool, "dev")},
		})
	}
	if opts.Flags.Has(detect.JBang) {
		steps = append(steps, Step{
			ID:          "jbang-headers",
			Title:       "Prepare the JBang script headers",
			Description: "Declare //DEPS, //JAVA and //SOURCES directives at the top of the script.",
			Commands:    []string{"jbang edit --sandbox <script>.java", "jbang run <script>.java"},
		})
	}
	if opts.Flags.Has(detect.LangChain4j) {
		steps = append(steps, Step{
			ID:          "langchain4j-model",
			Title:       "Configure the LangChain4j model and AI service",
			Description: "Declare the chat model, the AI service interface and the prompt templates.",
		})
	}

	steps = append(steps,
		Step{
			ID:          "implement",
			Title:       "Implement the change",
			Description: fmt.Sprintf("Write the code for %s in small, reviewable increments.", goal),
		},
		Step{
			ID:          "tests",
			Title:       "Write and run the tests",
			Description: "Cover the new behaviour with unit tests and run the suite.",
			Commands:    testCommands(opts.Flags, tool),
		},
		Step{
			ID:          "docs",
			Title:       "Update the documentation",
			Description: "Reflect the change in the README and code comments.",
		},
		Step{
			ID:          "review",
			Title:       "Final review",
			Description: "Walk through the diff with the human and confirm nothing else changed.",
		},
	)

	if len(steps) > MaxSteps {
		steps = steps[:MaxSteps]
	}

	p := &Plan{
		Title: fmt.Sprintf("Plan for %s", goal),
		Steps: steps,
	}
	p.Normalize()
	return p
}

func quarkusCmd(tool BuildTool, goal string) string {
	if tool == Gradle {
		return "./gradlew " + gradleTask(goal)
	}
	return "./mvnw quarkus:" + goal
}

func gradleTask(goal string) string {
	switch goal {
	case "add-extension":
		return "addExtension --extensions=\"<extension>\""
	case "dev":
		return "quarkusDev"
	default:
		return goal
	}
}

func testCommands(flags detect.FlagSet, tool BuildTool) []string {
	switch {
	case flags.Has(detect.Quarkus) && tool == Gradle:
		return []string{"./gradlew test"}
	case flags.Has(detect.Quarkus):
		return []string{"./mvnw test"}
	case flags.Has(detect.JBang):
		return []string{"jbang run <script>.java"}
	case tool == Gradle:
		return []string{"./gradlew test"}
	default:
		return []string{"./mvnw test"}
	}
}
