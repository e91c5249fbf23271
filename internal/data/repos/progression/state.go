package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

// ProgressionStateRepo is the only writer of the per-phase flag pairs.
// Nothing else may touch them; that is what keeps the unlock ordering
// invariant intact without explicit locking.
type ProgressionStateRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ProgressionState, error)
	GetOrCreate(dbc dbctx.Context, userID uuid.UUID, baselineSnapshot datatypes.JSON, locale string) (*types.ProgressionState, bool, error)
	ApplyPhaseCompletion(dbc dbctx.Context, userID uuid.UUID, completedPhase types.Phase) (*types.ProgressionState, error)
}

type progressionStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressionStateRepo(db *gorm.DB, baseLog *logger.Logger) ProgressionStateRepo {
	return &progressionStateRepo{db: db, log: baseLog.With("repo", "ProgressionStateRepo")}
}

func (r *progressionStateRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.ProgressionState, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.ProgressionState
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// GetOrCreate inserts the default state (foundation unlocked, nothing
// completed, snapshot frozen) on first touch. Concurrent first touches race
// on the user_id unique index; the loser's insert is a no-op and both callers
// read back the winner's row. The bool reports whether this call created it.
func (r *progressionStateRepo) GetOrCreate(dbc dbctx.Context, userID uuid.UUID, baselineSnapshot datatypes.JSON, locale string) (*types.ProgressionState, bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, false, fmt.Errorf("user id required")
	}

	now := time.Now().UTC()
	row := &types.ProgressionState{
		ID:                 uuid.New(),
		UserID:             userID,
		CurrentPhase:       types.PhaseFoundation,
		FoundationUnlocked: true,
		BaselineSnapshot:   baselineSnapshot,
		Locale:             locale,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected == 1

	state, err := r.GetByUserID(dbc, userID)
	if err != nil {
		return nil, false, err
	}
	if state == nil {
		return nil, false, fmt.Errorf("progression state missing after get-or-create for user %s", userID)
	}
	return state, created, nil
}

// ApplyPhaseCompletion marks completedPhase done and, when a successor
// exists, unlocks it and advances the current-phase pointer, all in a single
// row update guarded on the phase being unlocked and not yet completed.
// Calling it on the terminal phase only sets the completed flag.
func (r *progressionStateRepo) ApplyPhaseCompletion(dbc dbctx.Context, userID uuid.UUID, completedPhase types.Phase) (*types.ProgressionState, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || !types.ValidPhase(completedPhase) {
		return nil, fmt.Errorf("invalid phase completion: user=%s phase=%q", userID, completedPhase)
	}

	updates := map[string]interface{}{
		completedColumn(completedPhase): true,
		"updated_at":                    time.Now().UTC(),
	}
	if next := types.NextPhase(completedPhase); next != "" {
		updates[unlockedColumn(next)] = true
		updates["current_phase"] = next
	}

	res := t.WithContext(dbc.Ctx).
		Model(&types.ProgressionState{}).
		Where("user_id = ?", userID).
		Where(unlockedColumn(completedPhase)+" = ?", true).
		Where(completedColumn(completedPhase)+" = ?", false).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// No state row, the phase was never unlocked, or it already completed.
		// The engine checks all three before calling, so reaching this is a
		// programming error.
		return nil, &types.InvariantViolation{Phase: completedPhase, Detail: "completion applied while locked, already completed, or state missing"}
	}

	state, err := r.GetByUserID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("progression state vanished for user %s", userID)
	}
	if err := state.CheckInvariants(); err != nil {
		return nil, err
	}
	return state, nil
}

func unlockedColumn(p types.Phase) string {
	return string(p) + "_unlocked"
}

func completedColumn(p types.Phase) string {
	return string(p) + "_completed"
}
