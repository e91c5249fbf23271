package progression

import (
	"context"
	"testing"

	"github.com/yungbote/admitpath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
)

func TestProgressionStateRepoGetOrCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewProgressionStateRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "staterepo@example.com")
	snapshot := testutil.BaselineJSON(t, types.Baseline{TargetCountry: "USA", Exams: []string{"SAT"}})

	if got, err := repo.GetByUserID(dbc, u.ID); err != nil || got != nil {
		t.Fatalf("GetByUserID before create: state=%v err=%v", got, err)
	}

	state, created, err := repo.GetOrCreate(dbc, u.ID, snapshot, "en")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("first GetOrCreate should create")
	}
	if !state.FoundationUnlocked || state.FoundationCompleted {
		t.Fatalf("default state wrong: %+v", state)
	}
	if state.CurrentPhase != types.PhaseFoundation {
		t.Fatalf("current phase should start at foundation, got %s", state.CurrentPhase)
	}
	if state.StateOf(types.PhaseDifferentiation) != types.PhaseLocked {
		t.Fatal("differentiation should start locked")
	}

	again, created, err := repo.GetOrCreate(dbc, u.ID, snapshot, "ru")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second GetOrCreate must not create")
	}
	if again.ID != state.ID || again.Locale != "en" {
		t.Fatalf("second GetOrCreate should return the original row, got %+v", again)
	}
}

func TestProgressionStateRepoApplyPhaseCompletion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewProgressionStateRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "statecompletion@example.com")
	if _, _, err := repo.GetOrCreate(dbc, u.ID, testutil.BaselineJSON(t, types.Baseline{}), "en"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	state, err := repo.ApplyPhaseCompletion(dbc, u.ID, types.PhaseFoundation)
	if err != nil {
		t.Fatalf("ApplyPhaseCompletion(foundation): %v", err)
	}
	if !state.FoundationCompleted || !state.DifferentiationUnlocked {
		t.Fatalf("foundation completion should unlock differentiation: %+v", state)
	}
	if state.CurrentPhase != types.PhaseDifferentiation {
		t.Fatalf("current phase should advance, got %s", state.CurrentPhase)
	}
	if state.ProofUnlocked || state.LeverageUnlocked {
		t.Fatalf("later phases must stay locked: %+v", state)
	}

	// A completed phase refuses a second transition, so the current-phase
	// pointer can never move backwards.
	if _, err := repo.ApplyPhaseCompletion(dbc, u.ID, types.PhaseFoundation); err == nil {
		t.Fatal("repeated completion must fail")
	}
	state, err = repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if state.CurrentPhase != types.PhaseDifferentiation {
		t.Fatalf("current phase moved on repeated completion: %s", state.CurrentPhase)
	}
}

func TestProgressionStateRepoCompletionOnLockedPhase(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewProgressionStateRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "statelocked@example.com")
	if _, _, err := repo.GetOrCreate(dbc, u.ID, testutil.BaselineJSON(t, types.Baseline{}), "en"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if _, err := repo.ApplyPhaseCompletion(dbc, u.ID, types.PhaseProof); err == nil {
		t.Fatal("completing a locked phase must fail")
	}
}

func TestProgressionStateRepoTerminalPhase(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.WithTx(context.Background(), tx)

	repo := NewProgressionStateRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, tx, "stateterminal@example.com")
	if _, _, err := repo.GetOrCreate(dbc, u.ID, testutil.BaselineJSON(t, types.Baseline{}), "en"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	for _, p := range types.PhaseOrder {
		state, err := repo.ApplyPhaseCompletion(dbc, u.ID, p)
		if err != nil {
			t.Fatalf("ApplyPhaseCompletion(%s): %v", p, err)
		}
		if !state.Completed(p) {
			t.Fatalf("%s should be completed", p)
		}
	}

	state, err := repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if !state.LeverageCompleted {
		t.Fatal("leverage should be completed")
	}
	// Terminal completion advances nothing; the pointer parks on leverage.
	if state.CurrentPhase != types.PhaseLeverage {
		t.Fatalf("current phase should stay on leverage, got %s", state.CurrentPhase)
	}
}
