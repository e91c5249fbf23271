package progression

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/admitpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
)

func TestSubmissionRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "submissionrepo@example.com")

	sub := &types.Submission{
		UserID:         u.ID,
		Phase:          types.PhaseFoundation,
		RequirementKey: "sat_diagnostic_1350",
		Payload:        datatypes.JSON([]byte(`{"score":1200}`)),
	}
	if err := repo.Create(dbc, sub); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Status != types.SubmissionPending {
		t.Fatalf("new submission should be pending, got %s", sub.Status)
	}
	if sub.SubmittedAt.IsZero() {
		t.Fatal("submitted_at should be set on create")
	}

	got, err := repo.GetByID(dbc, sub.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: sub=%v err=%v", got, err)
	}
	if got.ReviewedAt != nil || got.CooldownUntil != nil {
		t.Fatalf("pending submission must have no review fields: %+v", got)
	}

	reviewed, err := repo.ApplyVerification(dbc, sub.ID, false, "Score below 1350 threshold", 24)
	if err != nil {
		t.Fatalf("ApplyVerification: %v", err)
	}
	if reviewed.Status != types.SubmissionRejected {
		t.Fatalf("expected rejected, got %s", reviewed.Status)
	}
	if reviewed.Feedback != "Score below 1350 threshold" {
		t.Fatalf("feedback not stored: %q", reviewed.Feedback)
	}
	if reviewed.ReviewedAt == nil {
		t.Fatal("reviewed_at should be set")
	}
	if reviewed.CooldownUntil == nil {
		t.Fatal("cooldown_until should be set on rejection with cooldown")
	}
	until := time.Until(*reviewed.CooldownUntil)
	if until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("cooldown_until should be ~24h out, got %s", until)
	}
	if !reviewed.OnCooldown(time.Now().UTC()) {
		t.Fatal("submission should report an open cooldown")
	}

	// The single verification pass is final.
	if _, err := repo.ApplyVerification(dbc, sub.ID, true, "second pass", 0); err == nil {
		t.Fatal("re-verifying a reviewed submission must fail")
	}
}

func TestSubmissionRepoApprovalHasNoCooldown(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "submissionapprove@example.com")

	sub := &types.Submission{
		UserID:         u.ID,
		Phase:          types.PhaseFoundation,
		RequirementKey: "project_topic",
		Payload:        datatypes.JSON([]byte(`{"topic":"urban air quality"}`)),
	}
	if err := repo.Create(dbc, sub); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reviewed, err := repo.ApplyVerification(dbc, sub.ID, true, "Looks strong", 24)
	if err != nil {
		t.Fatalf("ApplyVerification: %v", err)
	}
	if reviewed.Status != types.SubmissionApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.CooldownUntil != nil {
		t.Fatal("approval must never store a cooldown")
	}
}

func TestSubmissionRepoLatestFor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "submissionlatest@example.com")

	base := time.Now().UTC().Add(-2 * time.Hour)
	for i := 0; i < 3; i++ {
		sub := &types.Submission{
			UserID:         u.ID,
			Phase:          types.PhaseFoundation,
			RequirementKey: "sat_diagnostic_1350",
			Payload:        datatypes.JSON([]byte(`{}`)),
			SubmittedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(dbc, sub); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	// Unrelated requirement must not bleed into LatestFor.
	other := &types.Submission{
		UserID:         u.ID,
		Phase:          types.PhaseFoundation,
		RequirementKey: "project_topic",
		Payload:        datatypes.JSON([]byte(`{}`)),
		SubmittedAt:    time.Now().UTC(),
	}
	if err := repo.Create(dbc, other); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	latest, err := repo.LatestFor(dbc, u.ID, types.PhaseFoundation, "sat_diagnostic_1350")
	if err != nil || latest == nil {
		t.Fatalf("LatestFor: sub=%v err=%v", latest, err)
	}
	if !latest.SubmittedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("LatestFor returned wrong row: %+v", latest)
	}

	none, err := repo.LatestFor(dbc, u.ID, types.PhaseProof, "case_study")
	if err != nil || none != nil {
		t.Fatalf("LatestFor on empty triple: sub=%v err=%v", none, err)
	}

	history, err := repo.GetByUserAndPhase(dbc, u.ID, types.PhaseFoundation)
	if err != nil || len(history) != 4 {
		t.Fatalf("GetByUserAndPhase: len=%d err=%v", len(history), err)
	}
}
