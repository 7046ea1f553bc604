package matching

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/spigell/job-matcher/internal/catalog"
)

func job(id string, attrs map[catalog.Attribute]float64) *catalog.Job {
	return &catalog.Job{ID: id, Title: "job " + id, Attributes: attrs}
}

func ids(scored []ScoredJob) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.ID)
	}
	return out
}

func TestComputeTwoJobScenario(t *testing.T) {
	answers := Answers{catalog.WorkEnvironment: 8, catalog.ExperienceRequired: 5}
	jobs := []*catalog.Job{
		job("1", map[catalog.Attribute]float64{catalog.WorkEnvironment: 8, catalog.ExperienceRequired: 5}),
		job("2", map[catalog.Attribute]float64{catalog.WorkEnvironment: 3, catalog.ExperienceRequired: 5}),
	}

	// Both attributes weigh 1.0 in the default table.
	scored := Compute(answers, jobs, DefaultOptions())

	if got := ids(scored); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if scored[0].MatchScore != 100 {
		t.Fatalf("expected 100, got %d", scored[0].MatchScore)
	}
	if scored[1].MatchScore != 75 {
		t.Fatalf("expected 75, got %d", scored[1].MatchScore)
	}
}

func TestComputeEmptyAnswers(t *testing.T) {
	jobs := make([]*catalog.Job, 0, 7)
	for i := range 7 {
		jobs = append(jobs, job(fmt.Sprint(i), map[catalog.Attribute]float64{catalog.StressLevel: float64(i)}))
	}

	scored := Compute(Answers{}, jobs, Options{TopN: 5})

	if len(scored) != 5 {
		t.Fatalf("expected 5 results, got %d", len(scored))
	}
	for i, s := range scored {
		if s.MatchScore != 0 {
			t.Fatalf("expected zero score, got %d", s.MatchScore)
		}
		if s.ID != fmt.Sprint(i) {
			t.Fatalf("expected catalog order, got %v", ids(scored))
		}
	}
}

func TestScoreNoOverlapIsZero(t *testing.T) {
	answers := Answers{catalog.RemotePreference: 9}
	score, factors := Score(answers, job("1", map[catalog.Attribute]float64{catalog.CompanySize: 9}), DefaultWeights())

	if score != 0 {
		t.Fatalf("expected 0, got %d", score)
	}
	if len(factors) != 0 {
		t.Fatalf("expected no factors, got %v", factors)
	}
}

func TestScoreExactMatchIsHundred(t *testing.T) {
	answers := Answers{}
	attrs := map[catalog.Attribute]float64{}
	for i, attr := range catalog.KnownAttributes() {
		answers[attr] = i % 11
		attrs[attr] = float64(i % 11)
	}

	score, _ := Score(answers, job("1", attrs), DefaultWeights())
	if score != 100 {
		t.Fatalf("expected 100, got %d", score)
	}
}

func TestScoreBoundsForWellFormedInput(t *testing.T) {
	for answer := catalog.ScaleMin; answer <= catalog.ScaleMax; answer++ {
		for value := catalog.ScaleMin; value <= catalog.ScaleMax; value++ {
			answers := Answers{catalog.CareerGrowth: answer, catalog.StressLevel: catalog.ScaleMax - answer}
			j := job("1", map[catalog.Attribute]float64{
				catalog.CareerGrowth: float64(value),
				catalog.StressLevel:  float64(value),
			})

			score, _ := Score(answers, j, DefaultWeights())
			if score < 0 || score > 100 {
				t.Fatalf("score %d out of bounds for answer=%d value=%d", score, answer, value)
			}
		}
	}
}

func TestScoreMonotonicInDifference(t *testing.T) {
	answers := Answers{catalog.TeamworkPreference: 6}

	previous := -1
	for diff := 10; diff >= 0; diff-- {
		value := 6.0 - float64(diff)
		if value < 0 {
			value = 6.0 + float64(diff)
		}
		score, _ := Score(answers, job("1", map[catalog.Attribute]float64{catalog.TeamworkPreference: value}), DefaultWeights())
		if score <= previous {
			t.Fatalf("score must increase as difference shrinks: diff=%d score=%d previous=%d", diff, score, previous)
		}
		previous = score
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	answers := Answers{
		catalog.WorkEnvironment:    7,
		catalog.CompanySize:        3,
		catalog.CreativityRequired: 9,
	}
	jobs := []*catalog.Job{
		job("a", map[catalog.Attribute]float64{catalog.WorkEnvironment: 6.3, catalog.CompanySize: 2}),
		job("b", map[catalog.Attribute]float64{catalog.CreativityRequired: 4.5}),
		job("c", map[catalog.Attribute]float64{catalog.WorkEnvironment: 1, catalog.CompanySize: 9, catalog.CreativityRequired: 8}),
	}

	first := Compute(answers, jobs, DefaultOptions())
	for range 20 {
		if again := Compute(answers, jobs, DefaultOptions()); !reflect.DeepEqual(first, again) {
			t.Fatalf("results differ between runs:\n%v\n%v", first, again)
		}
	}
}

func TestComputeStableTies(t *testing.T) {
	answers := Answers{catalog.ProjectType: 5}
	jobs := []*catalog.Job{
		job("low", map[catalog.Attribute]float64{catalog.ProjectType: 0}),
		job("tie-1", map[catalog.Attribute]float64{catalog.ProjectType: 7}),
		job("top", map[catalog.Attribute]float64{catalog.ProjectType: 5}),
		job("tie-2", map[catalog.Attribute]float64{catalog.ProjectType: 3}),
		job("none", nil),
		job("tie-3", map[catalog.Attribute]float64{catalog.ProjectType: 7}),
	}

	scored := Compute(answers, jobs, DefaultOptions())

	expected := []string{"top", "tie-1", "tie-2", "tie-3", "low", "none"}
	if got := ids(scored); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestComputeTruncation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		jobs   int
		topN   int
		expect int
	}{
		{name: "fewer jobs than cap", jobs: 3, topN: 5, expect: 3},
		{name: "more jobs than cap", jobs: 12, topN: 5, expect: 5},
		{name: "default cap", jobs: 15, topN: 0, expect: DefaultTopN},
		{name: "empty catalog", jobs: 0, topN: 5, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jobs := make([]*catalog.Job, 0, tt.jobs)
			for i := range tt.jobs {
				jobs = append(jobs, job(fmt.Sprint(i), nil))
			}
			if got := len(Compute(Answers{catalog.StressLevel: 1}, jobs, Options{TopN: tt.topN})); got != tt.expect {
				t.Fatalf("expected %d results, got %d", tt.expect, got)
			}
		})
	}
}

func TestComputeDoesNotMutateCatalog(t *testing.T) {
	original := job("1", map[catalog.Attribute]float64{catalog.WorkEnvironment: 4})
	scored := Compute(Answers{catalog.WorkEnvironment: 4}, []*catalog.Job{original}, DefaultOptions())

	scored[0].Attributes[catalog.WorkEnvironment] = 0
	scored[0].Title = "changed"

	if original.Attributes[catalog.WorkEnvironment] != 4 || original.Title != "job 1" {
		t.Fatalf("catalog job was modified: %+v", original)
	}
}

func TestScoreWeighted(t *testing.T) {
	answers := Answers{catalog.CompanySize: 5, catalog.WorkEnvironment: 5}
	j := job("1", map[catalog.Attribute]float64{catalog.CompanySize: 0, catalog.WorkEnvironment: 5})

	// (50*0.6 + 100*1.0) / 1.6 = 81.25
	weighted, factors := Score(answers, j, DefaultWeights())
	if weighted != 81 {
		t.Fatalf("expected 81, got %d", weighted)
	}
	if len(factors) != 2 || factors[0].Attribute != catalog.WorkEnvironment || factors[1].Weight != 0.6 {
		t.Fatalf("unexpected factors: %+v", factors)
	}

	// Unweighted: (50 + 100) / 2 = 75
	if unweighted, _ := Score(answers, j, nil); unweighted != 75 {
		t.Fatalf("expected 75, got %d", unweighted)
	}
}

func TestWeightsFallback(t *testing.T) {
	w := Weights{catalog.StressLevel: 0.5, catalog.CareerGrowth: -1, catalog.ProjectType: 0}

	if w.For(catalog.StressLevel) != 0.5 {
		t.Fatalf("expected configured weight")
	}
	if w.For(catalog.CareerGrowth) != 1.0 || w.For(catalog.ProjectType) != 1.0 {
		t.Fatalf("non-positive weights must fall back to 1.0")
	}
	if w.For(catalog.TechLevel) != 1.0 {
		t.Fatalf("missing weights must fall back to 1.0")
	}
	if Weights(nil).For(catalog.TechLevel) != 1.0 {
		t.Fatalf("nil table must weigh 1.0")
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	answers := Answers{catalog.WorkEnvironment: 5, catalog.ExperienceRequired: 5}
	// (95 + 100) / 2 = 97.5
	j := job("1", map[catalog.Attribute]float64{catalog.WorkEnvironment: 5.5, catalog.ExperienceRequired: 5})

	if score, _ := Score(answers, j, nil); score != 98 {
		t.Fatalf("expected 98, got %d", score)
	}
}

// Out-of-range values are not clamped: a difference above 10 yields a
// negative factor score.
func TestScoreOutOfRangeIsNotClamped(t *testing.T) {
	answers := Answers{catalog.StressLevel: 0}

	score, factors := Score(answers, job("1", map[catalog.Attribute]float64{catalog.StressLevel: 12.5}), nil)
	if score != -25 {
		t.Fatalf("expected -25, got %d", score)
	}
	if factors[0].Score != -25 {
		t.Fatalf("expected factor score -25, got %v", factors[0].Score)
	}

	// -22.5 rounds half-up to -22.
	score, _ = Score(answers, job("2", map[catalog.Attribute]float64{catalog.StressLevel: 12.25}), nil)
	if score != -22 {
		t.Fatalf("expected -22, got %d", score)
	}
}

func TestHighlights(t *testing.T) {
	answers := Answers{
		catalog.WorkEnvironment:    6,
		catalog.ExperienceRequired: 2,
		catalog.CreativityRequired: 8,
		catalog.CareerGrowth:       7,
	}
	j := job("1", map[catalog.Attribute]float64{
		catalog.WorkEnvironment:    8,
		catalog.ExperienceRequired: 5,
		catalog.CreativityRequired: 7,
		catalog.CareerGrowth:       10,
	})

	got := Highlights(answers, j)
	expected := []catalog.Attribute{catalog.WorkEnvironment, catalog.CreativityRequired}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	if len(Highlights(Answers{}, j)) != 0 {
		t.Fatalf("no answers should give no highlights")
	}
}
