package classify

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

const Unknown = "Unknown"

type category struct {
	name     string
	keywords []string
}

// categories follows the cv.lv category list. Earlier entries win ties.
var categories = []category{
	{"Administrēšana, Asistēšana", []string{"administr", "asistent", "sekretār", "biroj", "office", "lietvedi", "dokumentu"}},
	{"Apsardze, Drošība", []string{"apsarg", "drošīb", "security", "aizsardzīb", "uzraudzīb"}},
	{"Bankas, Apdrošināšana, Finanses, Grāmatvedība", []string{"bank", "finans", "grāmatved", "apdrošināšan", "kredīt", "auditor", "naudas", "accounting", "finance"}},
	{"Būvniecība, Nekustamais īpašums, Ceļu būve", []string{"būvniecīb", "nekustam", "celtniecīb", "būvinženier", "arhitekt", "construction", "property", "real estate"}},
	{"Elektronika, Telekomunikācijas, Enerģētika", []string{"elektron", "elektrik", "telekomunikāc", "enerģētik", "electronic", "telecommunication", "electric"}},
	{"Informāciju tehnoloģijas, Datori", []string{"program", "it", "datori", "developer", "software", "sistem", "datortīkl", "web", "administrat", "code", "kodēšana", "programmer"}},
	{"Inženiertehnika", []string{"inženier", "tehnisk", "mechanic", "mehānik", "engineer", "technical"}},
	{"Izglītība, Zinātne", []string{"izglītīb", "skolotāj", "pasniedzēj", "zinātne", "pētnieks", "education", "teacher", "science"}},
	{"Jurisprudence, Tieslietas", []string{"jurist", "advokāt", "legal", "tiesisk", "tieslietas", "lawyer", "attorney"}},
	{"Kultūra, Māksla, Izklaide", []string{"kultūr", "māksla", "mākslinieks", "izklaide", "mūzik", "art", "entertainment", "culture"}},
	{"Lauksaimniecība, Mežsaimniecība, Vide", []string{"lauksaimniecīb", "mežsaimniecīb", "vide", "dārznieks", "ecology", "agriculture", "forestry", "environment"}},
	{"Mājsaimniecība, Apkope", []string{"mājsaimniecīb", "apkopēj", "tīrīšan", "housekeeping", "cleaning"}},
	{"Mārketings, Reklāma, PR, Mediji", []string{"mārketings", "reklām", "sabiedriskās attiecības", "medij", "marketing", "advertising", "pr", "media"}},
	{"Pakalpojumi", []string{"pakalpojum", "service", "apkalpošan"}},
	{"Pārdošana, Tirdzniecība, Klientu apkalpošana", []string{"pārdošan", "tirdzniecīb", "klient", "sales", "retail", "veikala", "customer"}},
	{"Personāla vadība", []string{"personāla", "hr", "cilvēkresurs", "human resources", "recruitment"}},
	{"Prakse, Brīvprātīgais darbs", []string{"prakse", "praktikant", "brīvprātīg", "intern", "internship", "volunteer"}},
	{"Ražošana, Rūpniecība", []string{"ražošan", "rūpniecīb", "production", "manufacturing", "factory", "montāž"}},
	{"Transports, Loģistika, Piegāde", []string{"transport", "loģistik", "piegād", "šofer", "autovadītāj", "kravas", "driver", "logistics", "delivery"}},
	{"Tūrisms, Viesnīcas, Ēdināšana", []string{"tūrism", "viesnīc", "ēdināšan", "pavārs", "restorān", "tourism", "hotel", "restaurant", "food"}},
	{"Vadība", []string{"vadītāj", "direktors", "manager", "management", "director", "vadība"}},
	{"Valsts un pašvaldību pārvalde", []string{"valsts", "pašvaldīb", "government", "municipal"}},
	{"Veselības aprūpe, Farmācija", []string{"veselīb", "medicīn", "ārsts", "farmāc", "health", "medical", "nurse", "doctor", "pharmacy"}},
}

// shortKeyword keywords only match whole words; as substrings "it" or "pr"
// would hit almost every text.
const shortKeyword = 2

var (
	urlCategory = regexp.MustCompile(`category-(.+?)(?:-jobs)?(?:/|$)`)

	urlSlugs = map[string]string{
		"it": "Informāciju tehnoloģijas, Datori",
	}
)

// Category picks the best matching category for a listing, or Unknown. A
// category in the listing URL wins. Otherwise keywords are scored over the
// title and description, with title hits counting double.
func Category(l Listing) string {
	if name := categoryFromURL(l.URL); name != "" {
		return name
	}
	if strings.TrimSpace(l.Title) == "" {
		return Unknown
	}

	title := strings.ToLower(l.Title)
	text := strings.TrimSpace(title + " " + strings.ToLower(l.Description))
	titleWords, textWords := tokenize(title), tokenize(text)

	best, bestScore := Unknown, 0
	for _, c := range categories {
		var score int
		for _, kw := range c.keywords {
			switch {
			case !mentions(text, textWords, kw):
			case mentions(title, titleWords, kw):
				score += 2
			default:
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c.name, score
		}
	}

	return best
}

func mentions(text string, words []string, kw string) bool {
	if len([]rune(kw)) <= shortKeyword {
		return slices.Contains(words, kw)
	}
	return strings.Contains(text, kw)
}

func categoryFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	m := urlCategory.FindStringSubmatch(u.Path)
	if m == nil {
		return ""
	}
	return urlSlugs[m[1]]
}
