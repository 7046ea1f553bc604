package questionnaire

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/matching"
)

type State int

const (
	StateWelcome State = iota
	StateAnswering
	StateResults
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateAnswering:
		return "answering"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrWrongState    = errors.New("operation not allowed in current state")
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Session is a single run through the questionnaire.
type Session struct {
	questions []Question
	jobs      *catalog.Jobs
	opts      matching.Options
	logger    *zap.Logger

	state   State
	index   int
	answers matching.Answers
	matches []matching.ScoredJob
}

func NewSession(questions []Question, jobs *catalog.Jobs, opts matching.Options, logger *zap.Logger) (*Session, error) {
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = &catalog.Jobs{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &Session{
		questions: qs,
		jobs:      jobs,
		opts:      opts,
		logger:    logger,
		state:     StateWelcome,
		answers:   matching.Answers{},
	}, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Index() int { return s.index }

func (s *Session) Total() int { return len(s.questions) }

func (s *Session) Questions() []Question { return s.questions }

func (s *Session) Jobs() *catalog.Jobs { return s.jobs }

// Answers returns a copy of the answers recorded so far.
func (s *Session) Answers() matching.Answers { return s.answers.Clone() }

// Matches returns the scored jobs computed when the questionnaire finished.
func (s *Session) Matches() []matching.ScoredJob { return s.matches }

// Progress is the share of questions already passed, in percent.
func (s *Session) Progress() float64 {
	switch s.state {
	case StateResults:
		return 100
	case StateAnswering:
		return float64(s.index) / float64(len(s.questions)) * 100
	default:
		return 0
	}
}

func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// Start leaves the welcome screen.
func (s *Session) Start() error {
	if s.state != StateWelcome {
		return fmt.Errorf("start: %w (%s)", ErrWrongState, s.state)
	}
	s.state = StateAnswering
	s.index = 0
	s.logger.Debug("questionnaire started", zap.Int("questions", len(s.questions)))
	return nil
}

// Current returns the question being answered.
func (s *Session) Current() (Question, error) {
	if s.state != StateAnswering {
		return Question{}, fmt.Errorf("current question: %w (%s)", ErrWrongState, s.state)
	}
	return s.questions[s.index], nil
}

// Answer returns the recorded answer for a field.
func (s *Session) Answer(field catalog.Attribute) (int, bool) {
	v, ok := s.answers[field]
	return v, ok
}

// Prefill returns the value a presentation layer should pre-select for q:
// the recorded answer, or the question's default.
func (s *Session) Prefill(q Question) (int, bool) {
	if v, ok := s.answers[q.Field]; ok {
		return v, true
	}
	return q.DefaultValue()
}

// RecordAnswer stores the answer to the current question.
func (s *Session) RecordAnswer(field catalog.Attribute, value int) error {
	q, err := s.Current()
	if err != nil {
		return err
	}
	if q.Field != field {
		return fmt.Errorf("%w: field %q is not asked by the current question (%q)", ErrInvalidAnswer, field, q.Field)
	}
	if !q.Accepts(value) {
		return fmt.Errorf("%w: %d is not a valid answer for %q", ErrInvalidAnswer, value, field)
	}

	s.answers[field] = value
	s.logger.Debug("answer recorded", zap.String("field", string(field)), zap.Int("value", value))
	return nil
}

// ClearAnswer forgets an answer, so the field no longer takes part in scoring.
func (s *Session) ClearAnswer(field catalog.Attribute) {
	delete(s.answers, field)
}

// Next moves to the following question. On the last question it scores the
// catalog and switches to results.
func (s *Session) Next() error {
	if s.state != StateAnswering {
		return fmt.Errorf("next: %w (%s)", ErrWrongState, s.state)
	}

	if !s.IsLast() {
		s.index++
		return nil
	}

	s.matches = matching.Compute(s.answers, s.jobs.Items, s.opts)
	s.state = StateResults

	s.logger.Info("matches computed",
		zap.Int("answers", len(s.answers)),
		zap.Int("catalog", s.jobs.Len()),
		zap.Int("matches", len(s.matches)),
	)
	return nil
}

// Previous moves back one question. It does nothing on the first question.
func (s *Session) Previous() error {
	if s.state != StateAnswering {
		return fmt.Errorf("previous: %w (%s)", ErrWrongState, s.state)
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Reset returns to the welcome screen with no answers and no matches.
func (s *Session) Reset() {
	s.state = StateWelcome
	s.index = 0
	s.answers = matching.Answers{}
	s.matches = nil
	s.logger.Debug("session reset")
}
