// Package matching scores job records against questionnaire answers.
//
// A job's match score is the weighted average of per-attribute factor scores
// over the attributes that are both answered and defined on the job:
//
//	factor = 100 - |job[f] - answer[f]| * 10
//	score  = round(sum(factor * weight) / sum(weight))
//
// Factor scores are not clamped, so values outside the 0..10 scale produce
// scores outside 0..100. Rounding is half-up, including for negative values.
package matching

import (
	"math"
	"sort"

	"github.com/spigell/job-matcher/internal/catalog"
)

// DefaultTopN is the number of matches kept when Options.TopN is not positive.
const DefaultTopN = 10

const (
	maxScore         = 100
	pointsPerStepOff = 10
)

// Answers maps an answered attribute to the user's value.
type Answers map[catalog.Attribute]int

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Fields lists the answered attributes in catalog.KnownAttributes order,
// followed by unknown attributes sorted by name.
func (a Answers) Fields() []catalog.Attribute { return orderedFields(a) }

// Weights assigns a relative importance to attributes. Attributes missing
// from the table, and non-positive entries, weigh 1.0. A nil table scores
// every attribute equally.
type Weights map[catalog.Attribute]float64

// For returns the weight applied to attr.
func (w Weights) For(attr catalog.Attribute) float64 {
	if weight, ok := w[attr]; ok && weight > 0 {
		return weight
	}
	return 1.0
}

// DefaultWeights is the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		catalog.TeamworkPreference:  0.8,
		catalog.LearningOpportunity: 1.0,
		catalog.ExperienceRequired:  1.0,
		catalog.WorkEnvironment:     1.0,
		catalog.StressLevel:         0.8,
		catalog.CreativityRequired:  0.8,
		catalog.CompanySize:         0.6,
		catalog.RemotePreference:    0.9,
		catalog.CareerGrowth:        0.8,
		catalog.ProjectType:         0.7,
	}
}

// Options configures Compute. A nil Weights table scores every attribute
// equally; TopN <= 0 means DefaultTopN.
type Options struct {
	Weights Weights
	TopN    int
}

// DefaultOptions uses the default weight table and DefaultTopN.
func DefaultOptions() Options {
	return Options{Weights: DefaultWeights(), TopN: DefaultTopN}
}

func (o Options) topN() int {
	if o.TopN <= 0 {
		return DefaultTopN
	}
	return o.TopN
}

// Factor is one attribute's contribution to a match score.
type Factor struct {
	Attribute  catalog.Attribute `json:"attribute"`
	Answer     int               `json:"answer"`
	Value      float64           `json:"value"`
	Difference float64           `json:"difference"`
	Score      float64           `json:"score"`
	Weight     float64           `json:"weight"`
}

// ScoredJob is a copy of a catalog job with its match score.
type ScoredJob struct {
	catalog.Job
	MatchScore int      `json:"match_score"`
	Factors    []Factor `json:"factors,omitempty"`
}

// Score computes the match score of a single job. Factors are returned in
// catalog.KnownAttributes order for answered attributes the job defines.
func Score(answers Answers, job *catalog.Job, weights Weights) (int, []Factor) {
	var (
		weightedScore float64
		totalWeight   float64
		factors       []Factor
	)

	for _, attr := range orderedFields(answers) {
		value, ok := job.Value(attr)
		if !ok {
			continue
		}

		answer := answers[attr]
		difference := math.Abs(value - float64(answer))
		factorScore := maxScore - difference*pointsPerStepOff
		weight := weights.For(attr)

		weightedScore += factorScore * weight
		totalWeight += weight

		factors = append(factors, Factor{
			Attribute:  attr,
			Answer:     answer,
			Value:      value,
			Difference: difference,
			Score:      factorScore,
			Weight:     weight,
		})
	}

	if totalWeight <= 0 {
		return 0, nil
	}

	return roundHalfUp(weightedScore / totalWeight), factors
}

// Compute scores every job, orders them by descending score keeping catalog
// order among equal scores, and returns at most opts.TopN results. The input
// jobs are never modified.
func Compute(answers Answers, jobs []*catalog.Job, opts Options) []ScoredJob {
	scored := make([]ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}
		score, factors := Score(answers, job, opts.Weights)
		scored = append(scored, ScoredJob{
			Job:        job.Clone(),
			MatchScore: score,
			Factors:    factors,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if limit := opts.topN(); len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}

// orderedFields returns the answered attributes in a fixed order so that
// floating point accumulation, and therefore rounding, is deterministic.
func orderedFields(answers Answers) []catalog.Attribute {
	fields := make([]catalog.Attribute, 0, len(answers))
	seen := make(map[catalog.Attribute]bool, len(answers))
	for _, attr := range catalog.KnownAttributes() {
		if _, ok := answers[attr]; ok {
			fields = append(fields, attr)
			seen[attr] = true
		}
	}

	var extra []catalog.Attribute
	for attr := range answers {
		if !seen[attr] {
			extra = append(extra, attr)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(fields, extra...)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
