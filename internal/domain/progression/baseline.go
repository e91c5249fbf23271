package progression

// Baseline is the user's self-reported profile snapshot that selects which
// requirement catalog applies. It is frozen into ProgressionState at creation
// so the catalog a user sees never silently changes underneath their
// completions.
type Baseline struct {
	TargetCountry string   `json:"target_country,omitempty"`
	Exams         []string `json:"exams,omitempty"`
	Goal          string   `json:"goal,omitempty"`
	SpecificGoal  string   `json:"specific_goal,omitempty"`
}

func (b Baseline) Empty() bool {
	return b.TargetCountry == "" && len(b.Exams) == 0 && b.Goal == "" && b.SpecificGoal == ""
}
