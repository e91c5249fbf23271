package catalog

import (
	"testing"

	"github.com/yungbote/admitpath-backend/internal/domain/progression"
)

func TestClassifyEmptyBaseline(t *testing.T) {
	f := Classify(progression.Baseline{})
	if f != (Flags{}) {
		t.Fatalf("empty baseline should yield all-false flags, got %+v", f)
	}
}

func TestClassifyCountryInference(t *testing.T) {
	f := Classify(progression.Baseline{TargetCountry: "USA"})
	if !f.RequiresSAT || !f.RequiresEnglishTest {
		t.Fatalf("USA should require SAT and an english test, got %+v", f)
	}
	if f.EuropeanTarget || f.RequiresENT {
		t.Fatalf("USA should not be european or ENT, got %+v", f)
	}

	f = Classify(progression.Baseline{TargetCountry: "Germany"})
	if !f.EuropeanTarget {
		t.Fatalf("Germany should be a european target, got %+v", f)
	}
	if f.RequiresEnglishTest || f.RequiresSAT {
		t.Fatalf("Germany alone should not require SAT or english test, got %+v", f)
	}

	f = Classify(progression.Baseline{TargetCountry: "Казахстан"})
	if !f.RequiresENT {
		t.Fatalf("Kazakhstan should require ENT, got %+v", f)
	}
}

func TestClassifyRussianCountryNames(t *testing.T) {
	f := Classify(progression.Baseline{TargetCountry: "Великобритания"})
	if !f.RequiresEnglishTest {
		t.Fatalf("russian UK name should require english test, got %+v", f)
	}

	f = Classify(progression.Baseline{TargetCountry: "Австрия"})
	if !f.EuropeanTarget {
		t.Fatalf("Австрия should be european, got %+v", f)
	}
	f = Classify(progression.Baseline{TargetCountry: "Австралия"})
	if f.EuropeanTarget || !f.RequiresEnglishTest {
		t.Fatalf("Австралия should be english-test, not european, got %+v", f)
	}
}

func TestClassifyExamListOverridesCountry(t *testing.T) {
	f := Classify(progression.Baseline{
		TargetCountry: "Germany",
		Exams:         []string{"SAT"},
	})
	if !f.RequiresSAT {
		t.Fatalf("explicit SAT exam must win over country inference, got %+v", f)
	}
	if !f.EuropeanTarget {
		t.Fatalf("country inference should still hold, got %+v", f)
	}
}

func TestClassifyExamList(t *testing.T) {
	f := Classify(progression.Baseline{Exams: []string{"SAT", "IELTS"}})
	if !f.RequiresSAT || !f.RequiresIELTS || !f.RequiresEnglishTest {
		t.Fatalf("SAT+IELTS exams, got %+v", f)
	}
	if f.RequiresTOEFL {
		t.Fatalf("TOEFL should not be set, got %+v", f)
	}

	f = Classify(progression.Baseline{Exams: []string{"toefl ibt", "ЕНТ"}})
	if !f.RequiresTOEFL || !f.RequiresENT {
		t.Fatalf("toefl+ент exams, got %+v", f)
	}
}

func TestClassifyIvyGoalForcesSAT(t *testing.T) {
	f := Classify(progression.Baseline{Goal: "get into an Ivy League school"})
	if !f.RequiresSAT {
		t.Fatalf("ivy goal must force SAT, got %+v", f)
	}
	f = Classify(progression.Baseline{SpecificGoal: "Лига Плюща"})
	if !f.RequiresSAT {
		t.Fatalf("russian ivy goal must force SAT, got %+v", f)
	}
}
