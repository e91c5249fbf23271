package progression

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgressionState is the one-per-user progression row. The four boolean
// pairs form an implicit three-state machine per phase (locked / unlocked /
// completed); only ProgressionStateRepo mutates them.
type ProgressionState struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	CurrentPhase Phase `gorm:"column:current_phase;not null" json:"current_phase"`

	FoundationUnlocked       bool `gorm:"column:foundation_unlocked;not null" json:"foundation_unlocked"`
	FoundationCompleted      bool `gorm:"column:foundation_completed;not null" json:"foundation_completed"`
	DifferentiationUnlocked  bool `gorm:"column:differentiation_unlocked;not null" json:"differentiation_unlocked"`
	DifferentiationCompleted bool `gorm:"column:differentiation_completed;not null" json:"differentiation_completed"`
	ProofUnlocked            bool `gorm:"column:proof_unlocked;not null" json:"proof_unlocked"`
	ProofCompleted           bool `gorm:"column:proof_completed;not null" json:"proof_completed"`
	LeverageUnlocked         bool `gorm:"column:leverage_unlocked;not null" json:"leverage_unlocked"`
	LeverageCompleted        bool `gorm:"column:leverage_completed;not null" json:"leverage_completed"`

	// BaselineSnapshot is the Baseline frozen at creation time; the catalog is
	// regenerated from it deterministically on every read.
	BaselineSnapshot datatypes.JSON `gorm:"column:baseline_snapshot;type:jsonb" json:"baseline_snapshot"`
	Locale           string         `gorm:"column:locale;not null" json:"locale"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProgressionState) TableName() string { return "progression_state" }

func (s *ProgressionState) Unlocked(p Phase) bool {
	switch p {
	case PhaseFoundation:
		return s.FoundationUnlocked
	case PhaseDifferentiation:
		return s.DifferentiationUnlocked
	case PhaseProof:
		return s.ProofUnlocked
	case PhaseLeverage:
		return s.LeverageUnlocked
	}
	return false
}

func (s *ProgressionState) Completed(p Phase) bool {
	switch p {
	case PhaseFoundation:
		return s.FoundationCompleted
	case PhaseDifferentiation:
		return s.DifferentiationCompleted
	case PhaseProof:
		return s.ProofCompleted
	case PhaseLeverage:
		return s.LeverageCompleted
	}
	return false
}

// StateOf derives the three-state machine position for one phase.
func (s *ProgressionState) StateOf(p Phase) PhaseState {
	switch {
	case s.Completed(p):
		return PhaseCompleted
	case s.Unlocked(p):
		return PhaseUnlocked
	default:
		return PhaseLocked
	}
}

// CheckInvariants reports the first ordering violation it finds. A non-nil
// result is a programming error: nothing outside the state repo may write
// the flag pairs.
func (s *ProgressionState) CheckInvariants() error {
	prev := Phase("")
	for _, p := range PhaseOrder {
		if s.Completed(p) && !s.Unlocked(p) {
			return &InvariantViolation{Phase: p, Detail: "completed while locked"}
		}
		if prev != "" && s.Unlocked(p) && !s.Completed(prev) {
			return &InvariantViolation{Phase: p, Detail: "unlocked before " + string(prev) + " completed"}
		}
		prev = p
	}
	return nil
}

type InvariantViolation struct {
	Phase  Phase
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "progression invariant violated: phase " + string(e.Phase) + " " + e.Detail
}
