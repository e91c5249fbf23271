package apperrors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnknownRequirement marks a submission that references a phase or
	// requirement key absent from the caller's catalog.
	ErrUnknownRequirement = errors.New("unknown requirement")
	// ErrLockedPhase marks a submission against a phase the user has not
	// unlocked yet.
	ErrLockedPhase = errors.New("phase is locked")
	// ErrCooldownActive marks a resubmission attempted while the previous
	// rejection's cooldown window is still open.
	ErrCooldownActive = errors.New("cooldown active")
	// ErrOracleUnavailable marks a verification attempt that could not reach
	// a verdict; the submission stays pending and the caller may retry.
	ErrOracleUnavailable = errors.New("verification oracle unavailable")
	// ErrMissingBaseline marks progression access before the user has
	// supplied a profile baseline.
	ErrMissingBaseline = errors.New("baseline not set")
)
