package company

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompanyNotFound is returned when the company id does not exist
	ErrCompanyNotFound = errors.New("company not found")

	// ErrServiceNotFound is returned when the service id does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrNoServices is returned when a bulk create carries an empty list
	ErrNoServices = errors.New("at least one service is required")

	// ErrTooManyPhotos is returned when adding photos would exceed the limit
	ErrTooManyPhotos = errors.New("a company can have at most 10 photos")
)

// ValidationError aggregates per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
