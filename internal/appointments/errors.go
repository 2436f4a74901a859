package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment id does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition is returned for a disallowed status change
	ErrInvalidTransition = errors.New("invalid status transition")
)
