package questionnaire

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/matching"
)

type scriptedPresenter struct {
	welcome []Action
	inputs  []Input
	results []Action

	steps    []Step
	notices  []string
	rendered [][]matching.ScoredJob
	answers  []matching.Answers
}

var errScriptExhausted = errors.New("script exhausted")

func (p *scriptedPresenter) RenderWelcome(int) (Action, error) {
	if len(p.welcome) == 0 {
		return 0, errScriptExhausted
	}
	a := p.welcome[0]
	p.welcome = p.welcome[1:]
	return a, nil
}

func (p *scriptedPresenter) RenderQuestion(step Step) (Input, error) {
	p.steps = append(p.steps, step)
	if len(p.inputs) == 0 {
		return Input{}, errScriptExhausted
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in, nil
}

func (p *scriptedPresenter) RenderResults(_ context.Context, answers matching.Answers, matches []matching.ScoredJob) (Action, error) {
	p.answers = append(p.answers, answers)
	p.rendered = append(p.rendered, matches)
	if len(p.results) == 0 {
		return 0, errScriptExhausted
	}
	a := p.results[0]
	p.results = p.results[1:]
	return a, nil
}

func (p *scriptedPresenter) Notify(message string) {
	p.notices = append(p.notices, message)
}

func value(v int) *int { return &v }

func TestRunCompletesQuestionnaire(t *testing.T) {
	p := &scriptedPresenter{
		welcome: []Action{ActionNext},
		inputs: []Input{
			{Action: ActionNext, Value: value(3)},
			{Action: ActionNext, Value: value(8)},
		},
		results: []Action{ActionQuit},
	}

	if err := Run(context.Background(), newTestSession(t), p); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(p.rendered) != 1 || len(p.rendered[0]) != 2 {
		t.Fatalf("expected one results screen with two matches, got %v", p.rendered)
	}
	if p.rendered[0][0].ID != "2" || p.rendered[0][0].MatchScore != 100 {
		t.Fatalf("unexpected best match: %+v", p.rendered[0][0])
	}
	if p.answers[0][catalog.TeamworkPreference] != 3 || p.answers[0][catalog.CompanySize] != 8 {
		t.Fatalf("unexpected answers: %v", p.answers[0])
	}
	if !p.steps[1].Last || p.steps[1].Progress != 50 {
		t.Fatalf("unexpected last step: %+v", p.steps[1])
	}
}

func TestRunPreviousKeepsAnswerAndPrefills(t *testing.T) {
	p := &scriptedPresenter{
		welcome: []Action{ActionNext},
		inputs: []Input{
			{Action: ActionNext, Value: value(0)},
			{Action: ActionPrevious},
			{Action: ActionQuit},
		},
	}

	if err := Run(context.Background(), newTestSession(t), p); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(p.steps) != 3 {
		t.Fatalf("expected three rendered steps, got %d", len(p.steps))
	}
	if p.steps[1].HasValue {
		t.Fatalf("multiple choice question must not be prefilled")
	}
	back := p.steps[2]
	if back.Index != 0 || !back.HasValue || back.Value != 0 {
		t.Fatalf("expected first question prefilled with 0, got %+v", back)
	}
}

func TestRunInvalidAnswerNotifiesAndRepeats(t *testing.T) {
	p := &scriptedPresenter{
		welcome: []Action{ActionNext},
		inputs: []Input{
			{Action: ActionNext, Value: value(42)},
			{Action: ActionQuit},
		},
	}

	if err := Run(context.Background(), newTestSession(t), p); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(p.notices) != 1 {
		t.Fatalf("expected one notice, got %v", p.notices)
	}
	if p.steps[1].Index != 0 {
		t.Fatalf("expected the question to be asked again, got index %d", p.steps[1].Index)
	}
}

func TestRunRestartFromResults(t *testing.T) {
	p := &scriptedPresenter{
		welcome: []Action{ActionNext, ActionQuit},
		inputs: []Input{
			{Action: ActionNext, Value: value(3)},
			{Action: ActionNext, Value: value(8)},
		},
		results: []Action{ActionRestart},
	}
	s := newTestSession(t)

	if err := Run(context.Background(), s, p); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.State() != StateWelcome || len(s.Answers()) != 0 {
		t.Fatalf("expected a fresh session after restart, got %s %v", s.State(), s.Answers())
	}
}

func TestRunQuitOnWelcome(t *testing.T) {
	p := &scriptedPresenter{welcome: []Action{ActionQuit}}

	if err := Run(context.Background(), newTestSession(t), p); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(p.steps) != 0 {
		t.Fatalf("no question should be rendered")
	}
}

func TestRunPropagatesPresenterErrors(t *testing.T) {
	p := &scriptedPresenter{welcome: []Action{ActionNext}}

	err := Run(context.Background(), newTestSession(t), p)
	if !errors.Is(err, errScriptExhausted) {
		t.Fatalf("expected presenter error, got %v", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, newTestSession(t), &scriptedPresenter{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunSkipClearsAnswer(t *testing.T) {
	p := &scriptedPresenter{
		welcome: []Action{ActionNext},
		inputs: []Input{
			{Action: ActionNext, Value: value(3)},
			{Action: ActionPrevious, Value: value(8)},
			{Action: ActionNext},
			{Action: ActionNext, Skip: true},
		},
		results: []Action{ActionQuit},
	}

	if err := Run(context.Background(), newTestSession(t), p); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, ok := p.answers[0][catalog.CompanySize]; ok {
		t.Fatalf("skipped question must not be answered: %v", p.answers[0])
	}
	if p.answers[0][catalog.TeamworkPreference] != 3 {
		t.Fatalf("unexpected answers: %v", p.answers[0])
	}
	for _, m := range p.rendered[0] {
		if len(m.Factors) != 1 || m.Factors[0].Attribute != catalog.TeamworkPreference {
			t.Fatalf("expected only teamwork to be scored, got %+v", m.Factors)
		}
	}
}
