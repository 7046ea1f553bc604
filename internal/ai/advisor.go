package ai

import (
	"context"

	"github.com/spigell/job-matcher/internal/matching"
)

// Explanation is a short narrative about why a job suits the answers.
type Explanation struct {
	Summary string   `json:"summary"`
	Pros    []string `json:"pros,omitempty"`
	Cons    []string `json:"cons,omitempty"`
	Raw     string   `json:"-"`
}

// Advisor explains a scored job in terms of the user's answers.
type Advisor interface {
	Explain(ctx context.Context, answers matching.Answers, job matching.ScoredJob) (*Explanation, error)
}
