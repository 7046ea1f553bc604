package questionnaire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/job-matcher/internal/catalog"
)

type Type string

const (
	TypeScale    Type = "scale"
	TypeMultiple Type = "multiple"

	defaultScaleValue = 5
)

type Option struct {
	Value int    `mapstructure:"value" json:"value"`
	Text  string `mapstructure:"text" json:"text"`
}

type Question struct {
	ID       int               `mapstructure:"id" json:"id"`
	Field    catalog.Attribute `mapstructure:"field" json:"field"`
	Type     Type              `mapstructure:"type" json:"type"`
	Text     string            `mapstructure:"text" json:"text"`
	Min      int               `mapstructure:"min" json:"min,omitempty"`
	Max      int               `mapstructure:"max" json:"max,omitempty"`
	MinLabel string            `mapstructure:"min-label" json:"min_label,omitempty"`
	MaxLabel string            `mapstructure:"max-label" json:"max_label,omitempty"`
	Options  []Option          `mapstructure:"options" json:"options,omitempty"`
}

// Validate checks that the question can be asked and answered.
func (q *Question) Validate() error {
	if strings.TrimSpace(string(q.Field)) == "" {
		return errors.New("field is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return errors.New("text is required")
	}

	switch q.Type {
	case TypeScale:
		if q.Min >= q.Max {
			return fmt.Errorf("scale min (%d) must be below max (%d)", q.Min, q.Max)
		}
	case TypeMultiple:
		if len(q.Options) == 0 {
			return errors.New("multiple choice question needs options")
		}
		seen := make(map[int]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt.Value] {
				return fmt.Errorf("duplicate option value %d", opt.Value)
			}
			seen[opt.Value] = true
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}

	return nil
}

// Accepts reports whether value is a valid answer to the question.
func (q *Question) Accepts(value int) bool {
	switch q.Type {
	case TypeScale:
		return value >= q.Min && value <= q.Max
	case TypeMultiple:
		_, ok := q.Option(value)
		return ok
	default:
		return false
	}
}

// Option returns the option with the given value.
func (q *Question) Option(value int) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// DefaultValue is the pre-selected value for an unanswered question.
// Multiple choice questions have none.
func (q *Question) DefaultValue() (int, bool) {
	if q.Type != TypeScale {
		return 0, false
	}
	return min(max(defaultScaleValue, q.Min), q.Max), true
}

// ValidateQuestions checks a question list as a whole.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("at least one question is required")
	}

	fields := make(map[catalog.Attribute]int, len(questions))
	for idx := range questions {
		q := &questions[idx]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d (%s): %w", q.ID, q.Field, err)
		}
		if prev, ok := fields[q.Field]; ok {
			return fmt.Errorf("questions %d and %d share field %q", prev, q.ID, q.Field)
		}
		fields[q.Field] = q.ID
	}

	return nil
}
