package questionnaire

import "github.com/spigell/job-matcher/internal/catalog"

// DefaultQuestions returns the built-in questionnaire.
func DefaultQuestions() []Question {
	return []Question{
		scale(1, catalog.TeamworkPreference, "Do you prefer working alone or in a team?", "Alone", "In a team"),
		scale(2, catalog.WorkEnvironment, "How social should your work environment be?", "Quiet and focused", "Lively and collaborative"),
		scale(3, catalog.LearningOpportunity, "How important is learning new things on the job?", "Not important", "Very important"),
		{
			ID:    4,
			Field: catalog.CompanySize,
			Type:  TypeMultiple,
			Text:  "What company size do you prefer?",
			Options: []Option{
				{Value: 2, Text: "Small (up to 50 people)"},
				{Value: 5, Text: "Medium (50-250 people)"},
				{Value: 8, Text: "Large (over 250 people)"},
			},
		},
		scale(5, catalog.RemotePreference, "How much do you want to work remotely?", "Always on site", "Fully remote"),
		scale(6, catalog.CareerGrowth, "How important is career growth?", "Not important", "Very important"),
		{
			ID:    7,
			Field: catalog.ProjectType,
			Type:  TypeMultiple,
			Text:  "What kind of work do you enjoy most?",
			Options: []Option{
				{Value: 2, Text: "Routine, well-defined tasks"},
				{Value: 5, Text: "A mix of routine and projects"},
				{Value: 8, Text: "New projects and initiatives"},
			},
		},
		scale(8, catalog.ExperienceRequired, "How much professional experience do you have?", "None", "A lot"),
		scale(9, catalog.StressLevel, "How much pressure are you comfortable with?", "As little as possible", "High pressure is fine"),
		scale(10, catalog.CreativityRequired, "How creative do you want your work to be?", "Not at all", "Very creative"),
	}
}

func scale(id int, field catalog.Attribute, text, minLabel, maxLabel string) Question {
	return Question{
		ID:       id,
		Field:    field,
		Type:     TypeScale,
		Text:     text,
		Min:      catalog.ScaleMin,
		Max:      catalog.ScaleMax,
		MinLabel: minLabel,
		MaxLabel: maxLabel,
	}
}
