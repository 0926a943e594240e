package entity

import "errors"

// Domain-specific sentinel errors, matching the error taxonomy in spec.md §7.
var (
	// ErrUnknownDiagnosis is a classification error: the triage classifier
	// received a diagnosis code outside 1..17. Fatal per-call.
	ErrUnknownDiagnosis = errors.New("unknown diagnosis code")

	// ErrArrivalRateNonPositive is an arrival-rate error: an arrival-rate
	// expression evaluated to zero or negative at some hour t. Fail-fast.
	ErrArrivalRateNonPositive = errors.New("arrival rate expression evaluated non-positive")

	// ErrNoOffShift names the condition of a shift catalog with no off-shift
	// entry. internal/roster reports that condition as a
	// validation.CodeMissingOffShift warning rather than returning this error.
	ErrNoOffShift = errors.New("shift catalog has no off-shift entry")

	// ErrUnknownShiftDefinition indicates an LP shift id with no catalog entry.
	ErrUnknownShiftDefinition = errors.New("unknown shift definition")
)
