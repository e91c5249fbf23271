package progression

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

// VerificationLogRepo records oracle invocations for audit. Writes are
// best-effort; callers log and continue on failure.
type VerificationLogRepo interface {
	Create(dbc dbctx.Context, row *types.VerificationLog) error
	GetBySubmissionID(dbc dbctx.Context, submissionID uuid.UUID) ([]*types.VerificationLog, error)
}

type verificationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationLogRepo(db *gorm.DB, baseLog *logger.Logger) VerificationLogRepo {
	return &verificationLogRepo{db: db, log: baseLog.With("repo", "VerificationLogRepo")}
}

func (r *verificationLogRepo) Create(dbc dbctx.Context, row *types.VerificationLog) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.SubmissionID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return t.WithContext(dbc.Ctx).Create(row).Error
}

func (r *verificationLogRepo) GetBySubmissionID(dbc dbctx.Context, submissionID uuid.UUID) ([]*types.VerificationLog, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []*types.VerificationLog
	if submissionID == uuid.Nil {
		return rows, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
