// Package common defines shared sentinel errors used across the mood
// journal service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Domain errors surfaced by the journal engine.
	ErrClassNotFound   = errors.New("class not found or has no students")
	ErrStudentNotFound = errors.New("student not found or has no entries")

	// Date handling errors.
	ErrUnparsableDate   = errors.New("unparsable date")
	ErrInvalidDateRange = errors.New("invalid date range")

	// Classifier capability errors.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// Generic flow control.
	ErrInternal = errors.New("internal error")
)
