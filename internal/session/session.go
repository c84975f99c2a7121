package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/philippart-s/ai-skills/internal/detect"
	skerrors "github.com/philippart-s/ai-skills/internal/errors"
	"github.com/philippart-s/ai-skills/internal/gitcheck"
	"github.com/philippart-s/ai-skills/internal/guide"
	"github.com/philippart-s/ai-skills/internal/interview"
	"github.com/philippart-s/ai-skills/internal/log"
	"github.com/philippart-s/ai-skills/internal/plan"
	"github.com/philippart-s/ai-skills/internal/prompt"
	"github.com/philippart-s/ai-skills/internal/response"
	"github.com/philippart-s/ai-skills/internal/workflow"
)

// Config configures a Runner
type Config struct {
	// Dir is the project directory inspected during GitCheck
	Dir string
	// Out receives the rendered responses
	Out io.Writer

	Prompter prompt.Prompter
	Guides   *guide.Loader
	Renderer *response.Renderer
	Logger   *log.Logger

	// Style controls how guidance markdown is rendered
	Style guide.Style
	// ShowGuides prints the full guidance text instead of a reference line
	ShowGuides bool

	// Plan, when set, is proposed instead of a generated draft
	Plan *plan.Plan

	// Inspect overrides the git inspection, mainly for tests
	Inspect func(dir string) (gitcheck.Status, error)

	// Options are passed to the sequencer
	Options []workflow.Option
}

// Runner drives one session through every phase against a Prompter
type Runner struct {
	cfg      Config
	surfaced map[string]bool
}

// NewRunner creates a runner, filling defaults for unset fields
func NewRunner(cfg Config) *Runner {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Prompter == nil {
		cfg.Prompter = prompt.Default()
	}
	if cfg.Guides == nil {
		cfg.Guides = guide.NewLoader("")
	}
	if cfg.Renderer == nil {
		cfg.Renderer = response.NewRenderer(cfg.Style == guide.StylePlain)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultLogger()
	}
	if cfg.Inspect == nil {
		cfg.Inspect = gitcheck.Inspect
	}
	return &Runner{cfg: cfg, surfaced: make(map[string]bool)}
}

// Run executes a full session for a detection result. It always returns the
// sequencer so the caller can report or export it. A halt, whether asked by
// the human or caused by ctx, is returned as a FLOW-008 error.
func (r *Runner) Run(ctx context.Context, detection detect.Result) (*workflow.Sequencer, error) {
	opts := append([]workflow.Option{workflow.WithLogger(r.cfg.Logger)}, r.cfg.Options...)
	seq := workflow.New(detection, opts...)

	logger := r.cfg.Logger.WithSession(seq.ID())
	logger.InfoContext(ctx, "session started", "flags", detection.Flags.String())

	err := r.run(ctx, seq)
	if err == nil {
		logger.Info("session finished")
		return seq, nil
	}

	if reason, ok := haltReason(ctx, err); ok {
		if herr := seq.Halt(reason); herr != nil {
			return seq, herr
		}
		r.emit(response.Response{
			Step:    "Halted",
			Actions: []string{"Session stopped in " + seq.Phase().String() + ". Nothing was rolled back."},
			Summary: summaryLines(seq),
		})
		return seq, skerrors.NewHaltedError(reason)
	}

	logger.LogError(err)
	return seq, err
}

func (r *Runner) run(ctx context.Context, seq *workflow.Sequencer) error {
	steps := []func(context.Context, *workflow.Sequencer) error{
		r.gather,
		r.gitCheck,
		r.planning,
		r.implement,
		r.validate,
	}
	for _, step := range steps {
		if err := step(ctx, seq); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) gather(ctx context.Context, seq *workflow.Sequencer) error {
	det := seq.Detection()
	actions := []string{"Detected stack: " + det.Flags.String()}
	if det.Inconclusive {
		actions = []string{"No Quarkus, JBang or LangChain4j marker found"}
	}
	if seq.Interview().HasClarification() {
		actions = append(actions, "You will be asked which stack applies")
	}
	actions = append(actions, r.surfaceGuides(seq)...)
	r.emit(response.Response{
		Step:             "Gathering",
		Actions:          actions,
		ValidationPrompt: "Answer the questions below. Type \"halt\" at any prompt to stop.",
	})

	for q := seq.Interview().CurrentQuestion(); q != nil; q = seq.Interview().CurrentQuestion() {
		a, err := r.ask(ctx, *q)
		if err != nil {
			return err
		}
		if _, err := seq.Answer(a); err != nil {
			if isAnswerError(err) {
				fmt.Fprintln(r.cfg.Out, err.Error())
				continue
			}
			return err
		}
		r.cfg.Logger.Debug("answer recorded", "question", q.ID, "progress", seq.Interview().Progress())
	}

	if err := seq.Advance(); err != nil {
		return err
	}

	// clarified stacks bring their own guidance
	if more := r.surfaceGuides(seq); len(more) > 0 {
		r.emit(response.Response{Step: "Gathering complete", Actions: more})
	}
	return nil
}

func (r *Runner) ask(ctx context.Context, q interview.Question) (interview.Answer, error) {
	p := r.cfg.Prompter
	title := q.Text
	if !q.Required && q.Type != interview.QuestionTypeYesNo {
		title += " (optional)"
	}

	switch q.Type {
	case interview.QuestionTypeYesNo:
		ok, err := p.Confirm(ctx, title)
		if err != nil {
			return interview.Answer{}, err
		}
		if ok {
			return interview.Answer{Value: "yes"}, nil
		}
		return interview.Answer{Value: "no"}, nil

	case interview.QuestionTypeChoice:
		v, err := p.Select(ctx, title, q.Choices)
		return interview.Answer{Value: v}, err

	case interview.QuestionTypeMulti:
		if len(q.Choices) > 0 {
			vs, err := p.MultiSelect(ctx, title, q.Choices)
			return interview.Answer{Values: vs}, err
		}
	}

	v, err := p.Input(ctx, title, q.Description)
	return interview.Answer{Value: v}, err
}

func (r *Runner) surfaceGuides(seq *workflow.Sequencer) []string {
	docs, err := r.cfg.Guides.ForFlags(seq.Flags())
	if err != nil {
		r.cfg.Logger.WithError(err).Warn("guidance unavailable")
		return nil
	}

	var actions []string
	for _, doc := range docs {
		if r.surfaced[doc.ID] {
			continue
		}
		if err := seq.SurfaceGuide(doc.ID, doc.Digest); err != nil {
			continue
		}
		r.surfaced[doc.ID] = true
		actions = append(actions, fmt.Sprintf("Loaded guidance: %s (%s)", doc.Title, doc.ID))

		if r.cfg.ShowGuides {
			out, err := guide.Render(doc.Content, r.cfg.Style, 0)
			if err != nil {
				out = doc.Content
			}
			fmt.Fprintln(r.cfg.Out, out)
		}
	}
	return actions
}

func (r *Runner) gitCheck(ctx context.Context, seq *workflow.Sequencer) error {
	st, err := r.cfg.Inspect(r.cfg.Dir)
	if err != nil {
		return err
	}
	if err := seq.RecordGitStatus(st); err != nil {
		return err
	}

	res := response.Response{
		Step:    "Git check",
		Actions: []string{"Inspected the repository (read-only)"},
		Details: st.Summary(),
	}
	if st.Dirty {
		res.ValidationPrompt = "The working tree has uncommitted changes. Commit or stash them before continuing."
	}
	r.emit(res)

	if st.Dirty {
		ok, err := r.cfg.Prompter.Confirm(ctx, "Continue with uncommitted changes?")
		if err != nil {
			return err
		}
		if !ok {
			return prompt.ErrHalted
		}
	}
	return seq.Advance()
}

func (r *Runner) planning(ctx context.Context, seq *workflow.Sequencer) error {
	answers := seq.Interview()
	goal := answers.Value(interview.GoalQuestionID)

	p := r.cfg.Plan
	if p == nil {
		var err error
		if p, err = r.draft(seq, goal); err != nil {
			return err
		}
	}

	for {
		if err := seq.ProposePlan(p); err != nil {
			return err
		}
		r.emit(response.Response{
			Step:             "Planning",
			Actions:          []string{fmt.Sprintf("Proposed %d steps", len(p.Steps))},
			Details:          planDetails(seq.Plan()),
			ValidationPrompt: "Review the plan. Nothing is implemented until you approve it.",
		})

		ok, err := r.cfg.Prompter.Confirm(ctx, "Approve this plan?")
		if err != nil {
			return err
		}
		if ok {
			break
		}

		goal, err = r.cfg.Prompter.Input(ctx, "Restate the goal for a new draft", "The plan is drafted again from your answer.")
		if err != nil {
			return err
		}
		if p, err = r.draft(seq, goal); err != nil {
			return err
		}
	}

	if err := seq.ApprovePlan(); err != nil {
		return err
	}
	return seq.Advance()
}

func (r *Runner) draft(seq *workflow.Sequencer, goal string) (*plan.Plan, error) {
	tool, err := plan.ParseBuildTool(seq.Interview().Value(interview.BuildQuestionID))
	if err != nil {
		return nil, err
	}
	return plan.Generate(plan.GenerateOptions{
		Flags:     seq.Flags(),
		Goal:      goal,
		BuildTool: tool,
	}), nil
}

func (r *Runner) implement(ctx context.Context, seq *workflow.Sequencer) error {
	total := len(seq.Plan().Steps)

	for i := 0; i < total; i++ {
		step, err := seq.StartStep()
		if err != nil {
			return err
		}

		r.emit(response.Response{
			Step:             fmt.Sprintf("Implementation %d/%d: %s", i+1, total, step.Title),
			Actions:          []string{step.Description},
			Details:          strings.Join(step.Commands, "\n"),
			ValidationPrompt: "Suggested commands are never run for you.",
			Summary:          summaryLines(seq),
		})

		if err := r.confirmUntil(ctx, fmt.Sprintf("Is step %q done?", step.Title)); err != nil {
			return err
		}
		if err := seq.CompleteStep(); err != nil {
			return err
		}

		if err := r.confirmUntil(ctx, fmt.Sprintf("Do you validate step %q?", step.Title)); err != nil {
			return err
		}
		if err := seq.ValidateStep(); err != nil {
			return err
		}
	}

	return seq.Advance()
}

// confirmUntil asks the same question until the human says yes
func (r *Runner) confirmUntil(ctx context.Context, question string) error {
	for {
		ok, err := r.cfg.Prompter.Confirm(ctx, question)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		fmt.Fprintln(r.cfg.Out, "Waiting. Answer yes when ready, or halt to stop.")
	}
}

func (r *Runner) validate(ctx context.Context, seq *workflow.Sequencer) error {
	r.emit(response.Response{
		Step:             "Validation",
		Actions:          []string{"Every step is completed and validated"},
		ValidationPrompt: "Run the build and tests yourself before signing off.",
		Summary:          summaryLines(seq),
	})

	ok, err := r.cfg.Prompter.Confirm(ctx, "Sign off on the change?")
	if err != nil {
		return err
	}
	if !ok {
		return errSignOffDeclined
	}
	return seq.Finish()
}

var errSignOffDeclined = errors.New("sign-off declined")

func (r *Runner) emit(res response.Response) {
	fmt.Fprintln(r.cfg.Out, r.cfg.Renderer.Render(res))
}

func planDetails(p *plan.Plan) string {
	var b strings.Builder
	for i, s := range p.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
		for _, c := range s.Commands {
			fmt.Fprintf(&b, "     $ %s\n", c)
		}
	}
	return b.String()
}

func summaryLines(seq *workflow.Sequencer) []string {
	p := seq.Plan()
	if p == nil {
		return []string{"Phase: " + seq.Phase().String()}
	}

	lines := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		mark := "○"
		switch {
		case seq.StepValidated(s.ID):
			mark = "✓"
		case s.Status == plan.StatusCompleted:
			mark = "●"
		case s.Status == plan.StatusInProgress:
			mark = "→"
		}
		lines = append(lines, mark+" "+s.Title)
	}
	return lines
}

func haltReason(ctx context.Context, err error) (string, bool) {
	switch {
	case errors.Is(err, prompt.ErrHalted):
		return "stopped by user", true
	case errors.Is(err, errSignOffDeclined):
		return err.Error(), true
	case ctx.Err() != nil:
		return ctx.Err().Error(), true
	}
	return "", false
}

func isAnswerError(err error) bool {
	return skerrors.HasCode(err, skerrors.ErrCodeInterviewAnswerRequired) ||
		skerrors.HasCode(err, skerrors.ErrCodeInterviewAnswerInvalid)
}
