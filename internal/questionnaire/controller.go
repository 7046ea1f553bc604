package questionnaire

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/job-matcher/internal/matching"
)

type Action int

const (
	ActionNext Action = iota
	ActionPrevious
	ActionRestart
	ActionQuit
)

// Step is everything a presenter needs to render one question.
type Step struct {
	Index    int
	Total    int
	Question Question
	// Value is the pre-selected answer when HasValue is set.
	Value    int
	HasValue bool
	Progress float64
	Last     bool
}

// Input is the user's reaction to a question. A nil Value means nothing was
// selected and the recorded answer, if any, is kept. Skip drops the recorded
// answer so the field is left out of scoring.
type Input struct {
	Action Action
	Value  *int
	Skip   bool
}

// Presenter renders the questionnaire and reports user input.
type Presenter interface {
	// RenderWelcome returns ActionNext to begin or ActionQuit.
	RenderWelcome(total int) (Action, error)
	RenderQuestion(step Step) (Input, error)
	// RenderResults returns ActionRestart or ActionQuit.
	RenderResults(ctx context.Context, answers matching.Answers, matches []matching.ScoredJob) (Action, error)
	Notify(message string)
}

// Run drives the session from presenter input until the user quits.
func Run(ctx context.Context, session *Session, presenter Presenter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch session.State() {
		case StateWelcome:
			err = runWelcome(session, presenter)
		case StateAnswering:
			err = runQuestion(session, presenter)
		case StateResults:
			err = runResults(ctx, session, presenter)
		default:
			err = fmt.Errorf("unexpected session state %s", session.State())
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var errQuit = errors.New("quit requested")

func runWelcome(session *Session, presenter Presenter) error {
	action, err := presenter.RenderWelcome(session.Total())
	if err != nil {
		return fmt.Errorf("render welcome: %w", err)
	}
	if action == ActionQuit {
		return errQuit
	}
	return session.Start()
}

func runQuestion(session *Session, presenter Presenter) error {
	q, err := session.Current()
	if err != nil {
		return err
	}

	value, hasValue := session.Prefill(q)
	input, err := presenter.RenderQuestion(Step{
		Index:    session.Index(),
		Total:    session.Total(),
		Question: q,
		Value:    value,
		HasValue: hasValue,
		Progress: session.Progress(),
		Last:     session.IsLast(),
	})
	if err != nil {
		return fmt.Errorf("render question %d: %w", q.ID, err)
	}

	if input.Skip {
		session.ClearAnswer(q.Field)
	} else if input.Value != nil && (input.Action == ActionNext || input.Action == ActionPrevious) {
		if err := session.RecordAnswer(q.Field, *input.Value); err != nil {
			if errors.Is(err, ErrInvalidAnswer) {
				presenter.Notify(err.Error())
				return nil
			}
			return err
		}
	}

	switch input.Action {
	case ActionNext:
		return session.Next()
	case ActionPrevious:
		return session.Previous()
	case ActionRestart:
		session.Reset()
		return nil
	case ActionQuit:
		return errQuit
	default:
		return fmt.Errorf("unknown action %d", input.Action)
	}
}

func runResults(ctx context.Context, session *Session, presenter Presenter) error {
	action, err := presenter.RenderResults(ctx, session.Answers(), session.Matches())
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	switch action {
	case ActionRestart:
		session.Reset()
		return nil
	case ActionQuit:
		return errQuit
	default:
		return fmt.Errorf("unexpected action %d on results", action)
	}
}
