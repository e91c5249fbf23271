package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

type RequirementCompletionRepo interface {
	Upsert(dbc dbctx.Context, row *types.RequirementCompletion) error
	GetByUserAndPhase(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.RequirementCompletion, error)
	CompletedKeys(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) (map[string]bool, error)
}

type requirementCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequirementCompletionRepo(db *gorm.DB, baseLog *logger.Logger) RequirementCompletionRepo {
	return &requirementCompletionRepo{db: db, log: baseLog.With("repo", "RequirementCompletionRepo")}
}

// Upsert is idempotent on (user, phase, requirement key): re-approving the
// same key refreshes the timestamp and proof snapshot instead of creating a
// duplicate verdict row.
func (r *requirementCompletionRepo) Upsert(dbc dbctx.Context, row *types.RequirementCompletion) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil || row.RequirementKey == "" {
		return fmt.Errorf("completion requires user and requirement key")
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.CompletedAt.IsZero() {
		row.CompletedAt = now
	}
	row.UpdatedAt = now

	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "phase"}, {Name: "requirement_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"completed",
				"completed_at",
				"proof_url",
				"proof_data",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *requirementCompletionRepo) GetByUserAndPhase(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.RequirementCompletion, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.RequirementCompletion
	if userID == uuid.Nil {
		return rows, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND phase = ?", userID, phase).
		Order("completed_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CompletedKeys returns the set of keys with completed=true for the phase.
// The engine compares it against the full required-key list as a subset
// check, so replayed or re-derived completions stay correct.
func (r *requirementCompletionRepo) CompletedKeys(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) (map[string]bool, error) {
	rows, err := r.GetByUserAndPhase(dbc, userID, phase)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			keys[row.RequirementKey] = true
		}
	}
	return keys, nil
}
