package catalog

import (
	"reflect"
	"testing"

	"github.com/yungbote/admitpath-backend/internal/domain/progression"
)

func TestBuildCatalogPhaseOrder(t *testing.T) {
	defs := BuildCatalog(Flags{}, "en")
	if len(defs) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(defs))
	}
	for i, p := range progression.PhaseOrder {
		if defs[i].Phase != p {
			t.Fatalf("phase %d: expected %s, got %s", i, p, defs[i].Phase)
		}
	}
}

func TestBuildCatalogUSAWithSATAndIELTS(t *testing.T) {
	flags := Classify(progression.Baseline{
		TargetCountry: "USA",
		Exams:         []string{"SAT", "IELTS"},
	})
	keys := RequirementKeys(BuildCatalog(flags, "en"), progression.PhaseFoundation)

	mustContain(t, keys, KeySATDiagnostic)
	mustContain(t, keys, KeyIELTSMock)
	mustNotContain(t, keys, KeyTOEFLMock)
	mustNotContain(t, keys, KeyENTMock)
	mustNotContain(t, keys, KeyPortfolioDraft)
	mustNotContain(t, keys, KeyMotivationLetter)
}

func TestBuildCatalogGermanyNoExams(t *testing.T) {
	flags := Classify(progression.Baseline{TargetCountry: "Germany"})
	keys := RequirementKeys(BuildCatalog(flags, "en"), progression.PhaseFoundation)

	mustContain(t, keys, KeyPortfolioDraft)
	mustContain(t, keys, KeyMotivationLetter)
	mustNotContain(t, keys, KeySATDiagnostic)
	mustNotContain(t, keys, KeyIELTSMock)
	mustNotContain(t, keys, KeyTOEFLMock)
}

func TestBuildCatalogEnglishCountryWithoutExamDefaultsToIELTS(t *testing.T) {
	flags := Classify(progression.Baseline{TargetCountry: "Canada"})
	keys := RequirementKeys(BuildCatalog(flags, "en"), progression.PhaseFoundation)
	mustContain(t, keys, KeyIELTSMock)
	mustNotContain(t, keys, KeyTOEFLMock)
}

func TestBuildCatalogBothEnglishExams(t *testing.T) {
	flags := Classify(progression.Baseline{Exams: []string{"IELTS", "TOEFL"}})
	keys := RequirementKeys(BuildCatalog(flags, "en"), progression.PhaseFoundation)
	mustContain(t, keys, KeyIELTSMock)
	mustContain(t, keys, KeyTOEFLMock)
}

func TestBuildCatalogDeterministic(t *testing.T) {
	flags := Classify(progression.Baseline{
		TargetCountry: "Казахстан",
		Exams:         []string{"SAT", "IELTS", "ЕНТ"},
		Goal:          "ivy league",
	})
	for _, locale := range []string{"en", "ru", "kk"} {
		a := BuildCatalog(flags, locale)
		b := BuildCatalog(flags, locale)
		for _, p := range progression.PhaseOrder {
			ka := RequirementKeys(a, p)
			kb := RequirementKeys(b, p)
			if !reflect.DeepEqual(ka, kb) {
				t.Fatalf("catalog keys not deterministic for %s/%s: %v vs %v", p, locale, ka, kb)
			}
		}
	}

	// Keys must also be locale-independent.
	en := BuildCatalog(flags, "en")
	ru := BuildCatalog(flags, "ru")
	for _, p := range progression.PhaseOrder {
		if !reflect.DeepEqual(RequirementKeys(en, p), RequirementKeys(ru, p)) {
			t.Fatalf("requirement keys differ between locales for %s", p)
		}
	}
}

func TestBuildCatalogLaterPhasesFixed(t *testing.T) {
	empty := BuildCatalog(Flags{}, "en")
	loaded := BuildCatalog(Flags{RequiresSAT: true, RequiresENT: true, EuropeanTarget: true}, "en")
	for _, p := range []progression.Phase{
		progression.PhaseDifferentiation,
		progression.PhaseProof,
		progression.PhaseLeverage,
	} {
		if !reflect.DeepEqual(RequirementKeys(empty, p), RequirementKeys(loaded, p)) {
			t.Fatalf("phase %s requirement list must not depend on baseline", p)
		}
	}
}

func TestBuildCatalogLocaleFallback(t *testing.T) {
	de := BuildCatalog(Flags{}, "de-DE")
	en := BuildCatalog(Flags{}, "en")
	if de[0].Name != en[0].Name {
		t.Fatalf("unsupported locale should fall back to english, got %q", de[0].Name)
	}

	ru := BuildCatalog(Flags{}, "ru-RU")
	if ru[0].Name != phaseTexts["ru"][progression.PhaseFoundation].Name {
		t.Fatalf("ru-RU should resolve to russian labels, got %q", ru[0].Name)
	}
}

func TestFindRequirement(t *testing.T) {
	defs := BuildCatalog(Flags{RequiresSAT: true}, "en")
	r := FindRequirement(defs, progression.PhaseFoundation, KeySATDiagnostic)
	if r == nil {
		t.Fatal("expected sat_diagnostic_1350 in foundation")
	}
	if len(r.Fields) == 0 || r.Fields[0].Name != "score" {
		t.Fatalf("unexpected fields: %+v", r.Fields)
	}
	if r.Fields[0].Min == nil || *r.Fields[0].Min != 400 || r.Fields[0].Max == nil || *r.Fields[0].Max != 1600 {
		t.Fatalf("sat score bounds wrong: %+v", r.Fields[0])
	}
	if FindRequirement(defs, progression.PhaseFoundation, "nope") != nil {
		t.Fatal("unknown key should resolve to nil")
	}
	if FindRequirement(defs, progression.PhaseProof, KeySATDiagnostic) != nil {
		t.Fatal("key lookup must be phase-scoped")
	}
}

func mustContain(t *testing.T, keys []string, key string) {
	t.Helper()
	for _, k := range keys {
		if k == key {
			return
		}
	}
	t.Fatalf("expected %q in %v", key, keys)
}

func mustNotContain(t *testing.T, keys []string, key string) {
	t.Helper()
	for _, k := range keys {
		if k == key {
			t.Fatalf("did not expect %q in %v", key, keys)
		}
	}
}
