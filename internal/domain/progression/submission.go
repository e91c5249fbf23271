package progression

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Submission is one proof attempt for a requirement. Rows are append-style:
// a resubmission creates a new row, and only the single verification pass
// that follows creation may set the status/feedback/review fields.
type Submission struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_submission_user_phase_key" json:"user_id"`

	Phase          Phase  `gorm:"column:phase;not null;index:idx_submission_user_phase_key" json:"phase"`
	RequirementKey string `gorm:"column:requirement_key;not null;index:idx_submission_user_phase_key" json:"requirement_key"`

	// Payload is the structured proof matching the requirement's field
	// schema. The ledger accepts any shape; schema validation is the
	// caller's concern.
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	Status   SubmissionStatus `gorm:"column:status;not null;index" json:"status"`
	Feedback string           `gorm:"column:feedback;type:text" json:"feedback,omitempty"`

	SubmittedAt   time.Time  `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CooldownUntil *time.Time `gorm:"column:cooldown_until" json:"cooldown_until,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Submission) TableName() string { return "submission" }

// OnCooldown reports whether a rejection cooldown is still open at now.
func (s *Submission) OnCooldown(now time.Time) bool {
	return s.CooldownUntil != nil && now.Before(*s.CooldownUntil)
}

// RequirementCompletion is the authoritative per-requirement verdict, at most
// one row per (user, phase, requirement key). A Submission is evidence; this
// row is the verdict, created only when the oracle approves.
type RequirementCompletion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_phase_key" json:"user_id"`

	Phase          Phase  `gorm:"column:phase;not null;uniqueIndex:idx_completion_user_phase_key" json:"phase"`
	RequirementKey string `gorm:"column:requirement_key;not null;uniqueIndex:idx_completion_user_phase_key" json:"requirement_key"`

	Completed   bool           `gorm:"column:completed;not null" json:"completed"`
	CompletedAt time.Time      `gorm:"column:completed_at;not null" json:"completed_at"`
	ProofURL    string         `gorm:"column:proof_url" json:"proof_url,omitempty"`
	ProofData   datatypes.JSON `gorm:"column:proof_data;type:jsonb" json:"proof_data,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RequirementCompletion) TableName() string { return "requirement_completion" }

// VerificationLog is a best-effort audit row per oracle invocation.
type VerificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Model     string `gorm:"column:model" json:"model,omitempty"`
	LatencyMS int64  `gorm:"column:latency_ms;not null" json:"latency_ms"`
	Approved  *bool  `gorm:"column:approved" json:"approved,omitempty"`
	Error     string `gorm:"column:error;type:text" json:"error,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (VerificationLog) TableName() string { return "verification_log" }
