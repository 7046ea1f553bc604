package catalog

import "strings"

// Attribute is a scoring attribute key shared by answers and job records.
type Attribute string

const (
	TeamworkPreference  Attribute = "teamwork_preference"
	WorkEnvironment     Attribute = "work_environment"
	LearningOpportunity Attribute = "learning_opportunity"
	CompanySize         Attribute = "company_size"
	RemotePreference    Attribute = "remote_preference"
	CareerGrowth        Attribute = "career_growth"
	ProjectType         Attribute = "project_type"
	ExperienceRequired  Attribute = "experience_required"
	StressLevel         Attribute = "stress_level"
	CreativityRequired  Attribute = "creativity_required"
	TechLevel           Attribute = "tech_level"
)

// ScaleMin and ScaleMax bound attribute values and scale answers.
const (
	ScaleMin = 0
	ScaleMax = 10
)

var knownAttributes = []Attribute{
	TeamworkPreference,
	WorkEnvironment,
	LearningOpportunity,
	CompanySize,
	RemotePreference,
	CareerGrowth,
	ProjectType,
	ExperienceRequired,
	StressLevel,
	CreativityRequired,
	TechLevel,
}

var attributeLabels = map[Attribute]string{
	TeamworkPreference:  "Teamwork",
	WorkEnvironment:     "Work environment",
	LearningOpportunity: "Learning opportunities",
	CompanySize:         "Company size",
	RemotePreference:    "Remote work",
	CareerGrowth:        "Career growth",
	ProjectType:         "Project type",
	ExperienceRequired:  "Experience requirements",
	StressLevel:         "Stress level",
	CreativityRequired:  "Creative work",
	TechLevel:           "Technical depth",
}

// KnownAttributes returns every attribute the loader extracts from job records.
func KnownAttributes() []Attribute {
	out := make([]Attribute, len(knownAttributes))
	copy(out, knownAttributes)
	return out
}

// ParseAttribute resolves a raw key, ignoring case and surrounding whitespace.
func ParseAttribute(raw string) (Attribute, bool) {
	key := Attribute(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := attributeLabels[key]; ok {
		return key, true
	}
	return "", false
}

// Label returns a human readable name, falling back to the key itself.
func (a Attribute) Label() string {
	if label, ok := attributeLabels[a]; ok {
		return label
	}
	return string(a)
}

func (a Attribute) String() string { return string(a) }
