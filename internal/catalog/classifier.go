package catalog

import (
	"strings"

	"github.com/yungbote/admitpath-backend/internal/domain/progression"
)

// Flags are the boolean facts the catalog builder branches on. They are
// derived once from a baseline, then frozen together with it.
type Flags struct {
	RequiresSAT         bool `json:"requires_sat"`
	RequiresEnglishTest bool `json:"requires_english_test"`
	RequiresIELTS       bool `json:"requires_ielts"`
	RequiresTOEFL       bool `json:"requires_toefl"`
	RequiresENT         bool `json:"requires_ent"`
	EuropeanTarget      bool `json:"european_target"`
}

// Token lists are matched by lowercase substring containment. Country names
// appear in English, Russian and Kazakh because the intake form accepts free
// text in any of the three.
var (
	satCountryTokens = []string{
		"usa", "u.s", "united states", "america", "сша", "америк", "штат",
	}
	englishTestCountryTokens = []string{
		"usa", "u.s", "united states", "america", "сша", "америк", "штат",
		"uk", "united kingdom", "britain", "england", "великобритан", "англи",
		"canada", "канад",
		"australia", "австрал",
		"new zealand", "nz", "зеланд",
	}
	europeanCountryTokens = []string{
		"germany", "герман", "неміс",
		"france", "франц",
		"netherlands", "holland", "нидерланд", "голланд",
		"italy", "итал",
		"spain", "испан",
		"austria", "австри",
		"poland", "польш",
		"czech", "чех",
		"hungary", "венгр",
	}
	entCountryTokens = []string{
		"kazakhstan", "казахстан", "қазақстан", "kz",
	}

	ivyGoalTokens = []string{"ivy", "айви", "лига плюща", "плющ"}
)

// Classify maps loose profile strings onto Flags. Pure and total: anything
// unrecognized simply contributes nothing. Explicit exam-list entries always
// win over country inference.
func Classify(b progression.Baseline) Flags {
	var f Flags

	country := normalize(b.TargetCountry)
	goal := normalize(b.Goal + " " + b.SpecificGoal)

	if containsAny(country, satCountryTokens) {
		f.RequiresSAT = true
	}
	if containsAny(country, englishTestCountryTokens) {
		f.RequiresEnglishTest = true
	}
	if containsAny(country, europeanCountryTokens) {
		f.EuropeanTarget = true
	}
	if containsAny(country, entCountryTokens) {
		f.RequiresENT = true
	}

	for _, exam := range b.Exams {
		e := normalize(exam)
		switch {
		case strings.Contains(e, "sat"):
			f.RequiresSAT = true
		case strings.Contains(e, "ielts"), strings.Contains(e, "айлтс"):
			f.RequiresIELTS = true
			f.RequiresEnglishTest = true
		case strings.Contains(e, "toefl"), strings.Contains(e, "тойфл"):
			f.RequiresTOEFL = true
			f.RequiresEnglishTest = true
		case strings.Contains(e, "ент"), strings.Contains(e, "ent"), strings.Contains(e, "ұбт"):
			f.RequiresENT = true
		}
	}

	if containsAny(goal, ivyGoalTokens) {
		f.RequiresSAT = true
	}

	return f
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(haystack string, tokens []string) bool {
	if haystack == "" {
		return false
	}
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}
