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

func TestRequirementCompletionRepoUpsertIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewRequirementCompletionRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "completionrepo@example.com")

	first := &types.RequirementCompletion{
		UserID:         u.ID,
		Phase:          types.PhaseFoundation,
		RequirementKey: "sat_diagnostic_1350",
		Completed:      true,
		CompletedAt:    time.Now().UTC().Add(-time.Hour),
		ProofData:      datatypes.JSON([]byte(`{"score":1400}`)),
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// A duplicate oracle callback for the same key must not create a second
	// verdict row.
	second := &types.RequirementCompletion{
		UserID:         u.ID,
		Phase:          types.PhaseFoundation,
		RequirementKey: "sat_diagnostic_1350",
		Completed:      true,
		CompletedAt:    time.Now().UTC(),
		ProofData:      datatypes.JSON([]byte(`{"score":1450}`)),
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	rows, err := repo.GetByUserAndPhase(dbc, u.ID, types.PhaseFoundation)
	if err != nil {
		t.Fatalf("GetByUserAndPhase: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one completion row, got %d", len(rows))
	}
	if !rows[0].CompletedAt.After(first.CompletedAt) {
		t.Fatalf("upsert should refresh completed_at: %v !> %v", rows[0].CompletedAt, first.CompletedAt)
	}
}

func TestRequirementCompletionRepoCompletedKeys(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewRequirementCompletionRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "completionkeys@example.com")

	for _, key := range []string{"project_topic", "self_analysis"} {
		if err := repo.Upsert(dbc, &types.RequirementCompletion{
			UserID:         u.ID,
			Phase:          types.PhaseFoundation,
			RequirementKey: key,
			Completed:      true,
		}); err != nil {
			t.Fatalf("Upsert %s: %v", key, err)
		}
	}
	// A different phase must not contribute keys.
	if err := repo.Upsert(dbc, &types.RequirementCompletion{
		UserID:         u.ID,
		Phase:          types.PhaseProof,
		RequirementKey: "case_study",
		Completed:      true,
	}); err != nil {
		t.Fatalf("Upsert other phase: %v", err)
	}

	keys, err := repo.CompletedKeys(dbc, u.ID, types.PhaseFoundation)
	if err != nil {
		t.Fatalf("CompletedKeys: %v", err)
	}
	if len(keys) != 2 || !keys["project_topic"] || !keys["self_analysis"] {
		t.Fatalf("unexpected key set: %v", keys)
	}
}
