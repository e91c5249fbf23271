package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

type SubmissionRepo interface {
	Create(dbc dbctx.Context, row *types.Submission) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Submission, error)
	GetByUserAndPhase(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.Submission, error)
	LatestFor(dbc dbctx.Context, userID uuid.UUID, phase types.Phase, requirementKey string) (*types.Submission, error)
	ApplyVerification(dbc dbctx.Context, id uuid.UUID, approved bool, reason string, cooldownHours int) (*types.Submission, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) Create(dbc dbctx.Context, row *types.Submission) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil {
		return fmt.Errorf("submission requires a user")
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = types.SubmissionPending
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).Create(row).Error
}

func (r *submissionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Submission, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Submission
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *submissionRepo) GetByUserAndPhase(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.Submission, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.Submission
	if userID == uuid.Nil {
		return rows, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND phase = ?", userID, phase).
		Order("submitted_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestFor returns the most recently submitted row for the triple, or nil.
func (r *submissionRepo) LatestFor(dbc dbctx.Context, userID uuid.UUID, phase types.Phase, requirementKey string) (*types.Submission, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || requirementKey == "" {
		return nil, nil
	}
	var rows []*types.Submission
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND phase = ? AND requirement_key = ?", userID, phase, requirementKey).
		Order("submitted_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ApplyVerification records the one verdict that follows a submission. The
// update is guarded on status=pending so a duplicate oracle callback cannot
// overwrite an already-reviewed row. Cooldown is stored only on rejection.
func (r *submissionRepo) ApplyVerification(dbc dbctx.Context, id uuid.UUID, approved bool, reason string, cooldownHours int) (*types.Submission, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("submission id required")
	}

	now := time.Now().UTC()
	status := types.SubmissionRejected
	if approved {
		status = types.SubmissionApproved
	}
	updates := map[string]interface{}{
		"status":      status,
		"feedback":    reason,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if !approved && cooldownHours > 0 {
		updates["cooldown_until"] = now.Add(time.Duration(cooldownHours) * time.Hour)
	}

	res := t.WithContext(dbc.Ctx).
		Model(&types.Submission{}).
		Where("id = ? AND status = ?", id, types.SubmissionPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("submission %s is not pending", id)
	}
	return r.GetByID(dbc, id)
}
