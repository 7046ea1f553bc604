package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/job-matcher/internal/ai"
	"github.com/spigell/job-matcher/internal/matching"
)

// FormatJobLine renders a match as a single menu line.
func FormatJobLine(m matching.ScoredJob) string {
	parts := []string{fallback(m.Title, m.ID)}
	if company := strings.TrimSpace(m.Company); company != "" {
		parts = append(parts, company)
	}
	if salary := m.SalaryText(); salary != "" {
		parts = append(parts, salary)
	}
	return fmt.Sprintf("%3d%%  %s", m.MatchScore, strings.Join(parts, " · "))
}

// FormatMatches renders a numbered list of matches with their highlights.
func FormatMatches(answers matching.Answers, matches []matching.ScoredJob) string {
	if len(matches) == 0 {
		return "No matching jobs found.\n"
	}

	var b strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, FormatJobLine(m))
		if labels := highlightLabels(answers, m); len(labels) > 0 {
			fmt.Fprintf(&b, "    matches you on: %s\n", strings.Join(labels, ", "))
		}
	}
	return b.String()
}

// FormatDetails renders everything known about a match.
func FormatDetails(answers matching.Answers, m matching.ScoredJob) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", fallback(m.Title, m.ID))
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len([]rune(fallback(m.Title, m.ID)))))

	row := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%-13s %s\n", label+":", value)
		}
	}
	row("Match", strconv.Itoa(m.MatchScore)+"%")
	row("Company", m.Company)
	row("Location", m.Location)
	row("Salary", m.SalaryText())
	row("Category", m.Category)
	row("Deadline", m.Deadline)
	row("Link", m.URL)

	if labels := highlightLabels(answers, m); len(labels) > 0 {
		row("Highlights", strings.Join(labels, ", "))
	}

	if len(m.Factors) > 0 {
		b.WriteString("\nHow it compares:\n")
		for _, f := range m.Factors {
			fmt.Fprintf(&b, "  %-24s you %2d, job %s -> %s\n",
				f.Attribute.Label(), f.Answer, formatNumber(f.Value), formatNumber(f.Score))
		}
	}

	for _, section := range []struct{ title, text string }{
		{"Description", m.Description},
		{"Requirements", m.Requirements},
		{"Responsibilities", m.Responsibilities},
		{"Benefits", m.Benefits},
	} {
		if text := strings.TrimSpace(section.text); text != "" {
			fmt.Fprintf(&b, "\n%s:\n%s\n", section.title, text)
		}
	}

	return b.String()
}

func FormatExplanation(e *ai.Explanation) string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", e.Summary)
	for _, pro := range e.Pros {
		fmt.Fprintf(&b, "  + %s\n", pro)
	}
	for _, con := range e.Cons {
		fmt.Fprintf(&b, "  - %s\n", con)
	}
	return b.String()
}

func highlightLabels(answers matching.Answers, m matching.ScoredJob) []string {
	highlights := matching.Highlights(answers, &m.Job)
	labels := make([]string, 0, len(highlights))
	for _, attr := range highlights {
		labels = append(labels, attr.Label())
	}
	return labels
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fallback(value, alt string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return alt
}

// scaleChoices lists the selectable values of a question with their menu text.
func scaleChoices(minValue, maxValue int, minLabel, maxLabel string) ([]int, []string) {
	values := make([]int, 0, maxValue-minValue+1)
	items := make([]string, 0, maxValue-minValue+1)
	for v := minValue; v <= maxValue; v++ {
		text := strconv.Itoa(v)
		switch {
		case v == minValue && minLabel != "":
			text += " - " + minLabel
		case v == maxValue && maxLabel != "":
			text += " - " + maxLabel
		}
		values = append(values, v)
		items = append(items, text)
	}
	return values, items
}
