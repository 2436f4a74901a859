package catalog

import "errors"

var (
	// ErrCategoryNotFound is returned when a category id is unknown
	ErrCategoryNotFound = errors.New("service category not found")

	// ErrSpecializationNotFound is returned when a specialization id is unknown
	ErrSpecializationNotFound = errors.New("specialization not found")
)
