package wizard

import "errors"

var (
	// ErrDraftNotFound is returned when the draft id does not exist or expired
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidStep is returned for step numbers outside 1..4
	ErrInvalidStep = errors.New("invalid step number")

	// ErrStepNotReached is returned when editing a step beyond the current one
	ErrStepNotReached = errors.New("step not reached yet")

	// ErrNotOnFinalStep is returned when submitting before reaching step 4
	ErrNotOnFinalStep = errors.New("submission requires the final step")
)
