package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrDraftNotFound indicates that a draft with the given ID does not exist.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrPlanNotFound indicates that a draft has no allocation plan yet.
	ErrPlanNotFound = errors.New("allocation plan not found")

	// ErrProfileNotFound indicates that a draft has no personal profile yet.
	ErrProfileNotFound = errors.New("personal profile not found")

	// ErrSnapshotNotFound indicates that a draft has no financial snapshot yet.
	ErrSnapshotNotFound = errors.New("financial snapshot not found")

	// ErrRiskProfileNotFound indicates that a draft has no derived risk profile yet.
	ErrRiskProfileNotFound = errors.New("risk profile not found")
)

// Business logic errors represent validation failures or constraint
// violations. These errors indicate that an operation cannot be completed
// due to suitability rules.
var (
	// ErrCashFlowDeficit indicates that monthly outflow exceeds monthly income.
	// This is fatal and blocks progression until the user corrects the snapshot.
	ErrCashFlowDeficit = errors.New("monthly outflow exceeds monthly income")

	// ErrIncompleteAnswers indicates that the risk questionnaire is not fully
	// answered, which blocks risk computation.
	ErrIncompleteAnswers = errors.New("risk questionnaire is incomplete")

	// ErrInvalidSubstitution indicates that a requested instrument is not in
	// the slot's candidate set. The plan is left unchanged.
	ErrInvalidSubstitution = errors.New("instrument is not a valid substitute for this slot")

	// ErrAllocationSumMismatch indicates that a track's percentages do not sum
	// to 100. Surfaced as a visible warning, never auto-corrected, because it
	// can arise legitimately mid-edit.
	ErrAllocationSumMismatch = errors.New("allocation percentages do not sum to 100")

	// ErrOverlapUnresolvable indicates that a colliding slot has no unused
	// candidate left to substitute.
	ErrOverlapUnresolvable = errors.New("no distinct candidate available to resolve overlap")

	// ErrInvalidSlotIndex indicates a slot index outside the plan's five slots.
	ErrInvalidSlotIndex = errors.New("slot index out of range")

	// ErrInvalidTrack indicates a track other than SIP or LUMPSUM.
	ErrInvalidTrack = errors.New("invalid allocation track")

	// ErrWeightOutOfRange indicates a slot percentage outside 0-100.
	ErrWeightOutOfRange = errors.New("allocation percentage must be between 0 and 100")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	// Draft operation errors
	ErrFailedToRetrieveDraft = errors.New("failed to retrieve draft")
	ErrFailedToSaveDraft     = errors.New("failed to save draft")
	ErrFailedToDeleteDraft   = errors.New("failed to delete draft")

	// Content-generation operation errors
	ErrContentGeneration = errors.New("content generation failed")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
