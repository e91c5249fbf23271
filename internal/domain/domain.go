package domain

import (
	"github.com/yungbote/admitpath-backend/internal/domain/progression"
	"github.com/yungbote/admitpath-backend/internal/domain/user"
)

type User = user.User

type Phase = progression.Phase
type PhaseState = progression.PhaseState
type SubmissionStatus = progression.SubmissionStatus

type Baseline = progression.Baseline
type ProgressionState = progression.ProgressionState
type Submission = progression.Submission
type RequirementCompletion = progression.RequirementCompletion
type VerificationLog = progression.VerificationLog
type InvariantViolation = progression.InvariantViolation

const (
	PhaseFoundation      = progression.PhaseFoundation
	PhaseDifferentiation = progression.PhaseDifferentiation
	PhaseProof           = progression.PhaseProof
	PhaseLeverage        = progression.PhaseLeverage

	PhaseLocked    = progression.PhaseLocked
	PhaseUnlocked  = progression.PhaseUnlocked
	PhaseCompleted = progression.PhaseCompleted

	SubmissionPending  = progression.SubmissionPending
	SubmissionApproved = progression.SubmissionApproved
	SubmissionRejected = progression.SubmissionRejected
)

var PhaseOrder = progression.PhaseOrder

func ValidPhase(p Phase) bool { return progression.ValidPhase(p) }
func NextPhase(p Phase) Phase { return progression.NextPhase(p) }
