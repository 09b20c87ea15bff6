package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when an update touches a missing task
	ErrTaskNotFound = errors.New("task not found")

	// ErrTimeEntryNotFound is returned when an update touches a missing time entry
	ErrTimeEntryNotFound = errors.New("time entry not found")
)
