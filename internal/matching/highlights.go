package matching

import "github.com/spigell/job-matcher/internal/catalog"

const (
	closeEnough    = 2
	strongAnswer   = 7
	strongJobValue = 7
)

// Highlights lists the attributes worth calling out as a good fit for the job.
func Highlights(answers Answers, job *catalog.Job) []catalog.Attribute {
	var out []catalog.Attribute

	for _, attr := range []catalog.Attribute{catalog.WorkEnvironment, catalog.ExperienceRequired} {
		if within(answers, job, attr, closeEnough) {
			out = append(out, attr)
		}
	}

	for _, attr := range []catalog.Attribute{catalog.CreativityRequired, catalog.CareerGrowth} {
		answer, answered := answers[attr]
		value, defined := job.Value(attr)
		if answered && defined && answer > strongAnswer && value >= strongJobValue {
			out = append(out, attr)
		}
	}

	return out
}

func within(answers Answers, job *catalog.Job, attr catalog.Attribute, limit float64) bool {
	answer, answered := answers[attr]
	value, defined := job.Value(attr)
	if !answered || !defined {
		return false
	}
	diff := value - float64(answer)
	return diff >= -limit && diff <= limit
}
