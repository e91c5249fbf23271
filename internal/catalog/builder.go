package catalog

import (
	"github.com/yungbote/admitpath-backend/internal/domain/progression"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldURL      FieldType = "url"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
)

// FieldSchema describes one input of a requirement's proof form. The engine
// only needs Name for identity; the rest drives UI rendering and caller-side
// validation.
type FieldSchema struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

type RequirementDefinition struct {
	Key            string        `json:"key"`
	Label          string        `json:"label"`
	Description    string        `json:"description"`
	SubmissionType string        `json:"submission_type"`
	Fields         []FieldSchema `json:"fields"`
}

type PhaseDefinition struct {
	Phase           progression.Phase       `json:"phase"`
	Name            string                  `json:"name"`
	Subtitle        string                  `json:"subtitle"`
	Description     string                  `json:"description"`
	UnlockCondition string                  `json:"unlock_condition"`
	Color           string                  `json:"color"`
	Icon            string                  `json:"icon"`
	Requirements    []RequirementDefinition `json:"requirements"`
}

// Requirement keys. These strings are persisted in requirement_completion
// rows, so they must never change or reorder between builds of the same
// flags.
const (
	KeySATDiagnostic    = "sat_diagnostic_1350"
	KeyIELTSMock        = "ielts_mock_6_5"
	KeyTOEFLMock        = "toefl_mock_90"
	KeyENTMock          = "ent_mock_120"
	KeyPortfolioDraft   = "portfolio_draft"
	KeyMotivationLetter = "motivation_letter"
	KeyProjectTopic     = "project_topic"
	KeySelfAnalysis     = "self_analysis"
	KeyStudyPlan        = "study_plan"

	KeyProjectLaunch      = "project_launch"
	KeyLeadershipRole     = "leadership_role"
	KeyOlympiadEntry      = "olympiad_entry"
	KeySkillCertification = "skill_certification"

	KeyProjectImpact        = "project_impact"
	KeyRecommendationLetter = "recommendation_letter"
	KeyCompetitionResult    = "competition_result"
	KeyCaseStudy            = "case_study"

	KeyFinalEssay          = "final_essay"
	KeyApplicationList     = "application_list"
	KeyScholarshipLonglist = "scholarship_longlist"
	KeyMockInterview       = "mock_interview"
)

var phaseColors = map[progression.Phase]string{
	progression.PhaseFoundation:      "#2563eb",
	progression.PhaseDifferentiation: "#7c3aed",
	progression.PhaseProof:           "#059669",
	progression.PhaseLeverage:        "#d97706",
}

var phaseIcons = map[progression.Phase]string{
	progression.PhaseFoundation:      "layers",
	progression.PhaseDifferentiation: "sparkles",
	progression.PhaseProof:           "badge-check",
	progression.PhaseLeverage:        "rocket",
}

// BuildCatalog produces the ordered four-phase catalog for one
// (flags, locale) pair. Foundation's requirement list is assembled from the
// classifier flags; the later phases are fixed regardless of baseline.
// Deterministic: identical inputs yield identical requirement keys in
// identical order. Only label text varies by locale.
func BuildCatalog(flags Flags, locale string) []PhaseDefinition {
	loc := ResolveLocale(locale)

	defs := make([]PhaseDefinition, 0, len(progression.PhaseOrder))
	for _, p := range progression.PhaseOrder {
		pt := phaseTextFor(loc, p)
		defs = append(defs, PhaseDefinition{
			Phase:           p,
			Name:            pt.Name,
			Subtitle:        pt.Subtitle,
			Description:     pt.Description,
			UnlockCondition: pt.UnlockCondition,
			Color:           phaseColors[p],
			Icon:            phaseIcons[p],
			Requirements:    requirementsFor(p, flags, loc),
		})
	}
	return defs
}

// RequirementKeys returns the ordered key list of one phase in the catalog.
func RequirementKeys(defs []PhaseDefinition, phase progression.Phase) []string {
	for _, d := range defs {
		if d.Phase != phase {
			continue
		}
		keys := make([]string, 0, len(d.Requirements))
		for _, r := range d.Requirements {
			keys = append(keys, r.Key)
		}
		return keys
	}
	return nil
}

// FindRequirement resolves one (phase, key) pair, or nil when absent.
func FindRequirement(defs []PhaseDefinition, phase progression.Phase, key string) *RequirementDefinition {
	for _, d := range defs {
		if d.Phase != phase {
			continue
		}
		for i := range d.Requirements {
			if d.Requirements[i].Key == key {
				return &d.Requirements[i]
			}
		}
	}
	return nil
}

func requirementsFor(p progression.Phase, flags Flags, loc string) []RequirementDefinition {
	switch p {
	case progression.PhaseFoundation:
		return foundationRequirements(flags, loc)
	case progression.PhaseDifferentiation:
		return fixedRequirements(loc,
			req(KeyProjectLaunch, "link",
				urlField("project_url", true),
				textareaField("description", true)),
			req(KeyLeadershipRole, "text",
				textField("role", true),
				textField("organization", false)),
			req(KeyOlympiadEntry, "text",
				textField("name", true),
				selectField("level", true, "school", "city", "regional", "national", "international")),
			req(KeySkillCertification, "link",
				urlField("certificate_url", true)),
		)
	case progression.PhaseProof:
		return fixedRequirements(loc,
			req(KeyProjectImpact, "text",
				numberField("metric_value", true),
				urlField("evidence_url", false),
				textareaField("narrative", true)),
			req(KeyRecommendationLetter, "document",
				urlField("letter_url", true)),
			req(KeyCompetitionResult, "text",
				textField("name", true),
				selectField("placement", true, "participant", "finalist", "top3", "winner"),
				urlField("proof_url", false)),
			req(KeyCaseStudy, "link",
				urlField("case_url", true)),
		)
	case progression.PhaseLeverage:
		return fixedRequirements(loc,
			req(KeyFinalEssay, "text",
				textareaField("essay", true)),
			req(KeyApplicationList, "text",
				textareaField("universities", true)),
			req(KeyScholarshipLonglist, "text",
				textareaField("scholarships", true)),
			req(KeyMockInterview, "link",
				urlField("recording_url", true),
				textareaField("reflection", false)),
		)
	}
	return nil
}

func foundationRequirements(flags Flags, loc string) []RequirementDefinition {
	var out []RequirementDefinition

	if flags.RequiresSAT {
		out = append(out, localized(loc, req(KeySATDiagnostic, "test_score",
			boundedNumberField("score", true, 400, 1600),
			urlField("report_url", false))))
	}
	// English proof: explicit exam entries decide which block(s) appear; a
	// country-only english requirement defaults to the IELTS block.
	includeIELTS := flags.RequiresIELTS ||
		(flags.RequiresEnglishTest && !flags.RequiresIELTS && !flags.RequiresTOEFL)
	if includeIELTS {
		out = append(out, localized(loc, req(KeyIELTSMock, "test_score",
			boundedNumberField("score", true, 0, 9),
			urlField("report_url", false))))
	}
	if flags.RequiresTOEFL {
		out = append(out, localized(loc, req(KeyTOEFLMock, "test_score",
			boundedNumberField("score", true, 0, 120),
			urlField("report_url", false))))
	}
	if flags.RequiresENT {
		out = append(out, localized(loc, req(KeyENTMock, "test_score",
			boundedNumberField("score", true, 0, 140),
			urlField("report_url", false))))
	}
	if flags.EuropeanTarget {
		out = append(out,
			localized(loc, req(KeyPortfolioDraft, "link",
				urlField("portfolio_url", true),
				textareaField("summary", false))),
			localized(loc, req(KeyMotivationLetter, "text",
				textareaField("letter", true))),
		)
	}

	out = append(out,
		localized(loc, req(KeyProjectTopic, "text",
			textField("topic", true),
			textareaField("rationale", false))),
		localized(loc, req(KeySelfAnalysis, "text",
			textareaField("strengths", true),
			textareaField("weaknesses", true))),
		localized(loc, req(KeyStudyPlan, "text",
			textareaField("plan", true))),
	)
	return out
}

func fixedRequirements(loc string, reqs ...RequirementDefinition) []RequirementDefinition {
	out := make([]RequirementDefinition, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, localized(loc, r))
	}
	return out
}

func req(key, submissionType string, fields ...FieldSchema) RequirementDefinition {
	return RequirementDefinition{
		Key:            key,
		SubmissionType: submissionType,
		Fields:         fields,
	}
}

func localized(loc string, r RequirementDefinition) RequirementDefinition {
	rt := requirementTextFor(loc, r.Key)
	r.Label = rt.Label
	r.Description = rt.Description
	return r
}

func textField(name string, required bool) FieldSchema {
	return FieldSchema{Name: name, Type: FieldText, Label: fieldLabel(name), Required: required}
}

func textareaField(name string, required bool) FieldSchema {
	return FieldSchema{Name: name, Type: FieldTextarea, Label: fieldLabel(name), Required: required}
}

func urlField(name string, required bool) FieldSchema {
	return FieldSchema{Name: name, Type: FieldURL, Label: fieldLabel(name), Required: required}
}

func numberField(name string, required bool) FieldSchema {
	return FieldSchema{Name: name, Type: FieldNumber, Label: fieldLabel(name), Required: required}
}

func boundedNumberField(name string, required bool, min, max float64) FieldSchema {
	lo, hi := min, max
	return FieldSchema{Name: name, Type: FieldNumber, Label: fieldLabel(name), Required: required, Min: &lo, Max: &hi}
}

func selectField(name string, required bool, options ...string) FieldSchema {
	return FieldSchema{Name: name, Type: FieldSelect, Label: fieldLabel(name), Required: required, Options: options}
}
