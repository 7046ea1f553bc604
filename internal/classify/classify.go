// Package classify estimates listing properties that scraped data often
// lacks: how team-oriented the work is and which category the job belongs to.
// Keywords cover English and Latvian listings.
package classify

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Listing is the free text of a job posting.
type Listing struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	URL              string
}

// NeutralTeamLikelihood is returned when the text says nothing either way.
// Most jobs involve some collaboration, so it leans towards team work.
const NeutralTeamLikelihood = 0.55

var (
	teamKeywords = []string{
		"team", "komanda", "komandā", "kolektīvs", "kolektīvā",
		"sadarbība", "sadarboties", "collaborate", "collaboration",
		"grupa", "grupā", "koordinēt", "koordinācija",
		"lead", "vadīt", "vadītājs", "menedžer", "pārvaldīt",
		"partneri", "kolēģi", "colleagues", "meetings", "sapulces",
		"pievienojies mūsu komandai", "join our team", "komandas darbs",
		"apspriedes", "prezentācijas", "presentations",
		"koordinēšana", "coordination", "projektu vadība", "project management",
	}

	individualKeywords = []string{
		"independent", "neatkarīgi", "patstāvīgi", "autonoms",
		"pašmotivēts", "self-motivated", "self-directed",
		"individual", "individuāls", "remote", "attālināti",
		"specializēts", "specialized", "expert", "eksperts",
		"autonomi", "autonomia", "neatkarība", "independence",
		"patstāvīgs darbs", "individual work", "strādāt patstāvīgi",
	}

	leadershipTitles = []string{"vadītājs", "manager", "lead", "head", "director", "chief"}
	customerService  = []string{"klientu apkalpošana", "customer service"}

	teamSizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`komanda.{1,30}(\d+).{1,10}(cilvēk|kolēģ|speciālist)`),
		regexp.MustCompile(`team of.{1,10}(\d+)`),
		regexp.MustCompile(`(\d+).{1,10}(person|people|member) team`),
	}
)

// TeamLikelihood returns a value in [0,1]: close to 1 for team work, close to
// 0 for individual work.
func TeamLikelihood(l Listing) float64 {
	text := strings.ToLower(strings.Join([]string{l.Title, l.Description, l.Requirements, l.Responsibilities}, " "))
	words := tokenize(strings.ReplaceAll(text, "-", ""))

	team := countKeywords(words, teamKeywords)
	individual := countKeywords(words, individualKeywords)

	title := strings.ToLower(l.Title)
	if containsAny(title, leadershipTitles) {
		team += 3
	}
	if containsAny(text, customerService) {
		team += 2
	}
	for _, re := range teamSizePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if size, err := strconv.Atoi(m[1]); err == nil && size > 1 {
			team++
		}
	}

	if team+individual == 0 {
		return NeutralTeamLikelihood
	}
	return float64(team) / float64(team+individual)
}

// tokenize splits text into words. Letters, digits and underscores form a
// word, in any script.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// countKeywords counts keyword occurrences that start at a word boundary. The
// last word of a keyword may be extended, so "collaborat" style stems and
// inflected forms ("komandai") still count.
func countKeywords(words []string, keywords []string) int {
	var count int
	for _, kw := range keywords {
		parts := tokenize(strings.ReplaceAll(kw, "-", ""))
		if len(parts) == 0 {
			continue
		}
		for i := 0; i+len(parts) <= len(words); i++ {
			if phraseAt(words[i:], parts) {
				count++
			}
		}
	}
	return count
}

func phraseAt(words, parts []string) bool {
	last := len(parts) - 1
	for j := 0; j < last; j++ {
		if words[j] != parts[j] {
			return false
		}
	}
	return strings.HasPrefix(words[last], parts[last])
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
