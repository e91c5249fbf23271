package progression

// Phase is one of the four ordered admission-progression stages. The order
// below is the total order: a phase unlocks only when its predecessor is
// completed.
type Phase string

const (
	PhaseFoundation      Phase = "foundation"
	PhaseDifferentiation Phase = "differentiation"
	PhaseProof           Phase = "proof"
	PhaseLeverage        Phase = "leverage"
)

// PhaseOrder is the canonical progression order. Catalog building, completion
// checks and unlock transitions all iterate this slice, never a map.
var PhaseOrder = []Phase{
	PhaseFoundation,
	PhaseDifferentiation,
	PhaseProof,
	PhaseLeverage,
}

func ValidPhase(p Phase) bool {
	for _, candidate := range PhaseOrder {
		if candidate == p {
			return true
		}
	}
	return false
}

// NextPhase returns the phase after p, or "" when p is terminal or unknown.
func NextPhase(p Phase) Phase {
	for i, candidate := range PhaseOrder {
		if candidate == p && i+1 < len(PhaseOrder) {
			return PhaseOrder[i+1]
		}
	}
	return ""
}

// PhaseState is the derived per-phase state machine position.
type PhaseState string

const (
	PhaseLocked    PhaseState = "locked"
	PhaseUnlocked  PhaseState = "unlocked"
	PhaseCompleted PhaseState = "completed"
)

// SubmissionStatus is the verification lifecycle of a single proof attempt.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)
