package services

import (
	"errors"
	"fmt"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Catalog errors
	ErrStandardNotFound = errors.New("standard not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrChapterNotFound  = errors.New("chapter not found")

	// Generation errors
	ErrUnknownTestType          = errors.New("unknown test type")
	ErrInsufficientQuestionPool = errors.New("insufficient question pool for section")

	// Test / attempt errors
	ErrTestNotFound          = errors.New("test not found")
	ErrAttemptNotFound       = errors.New("attempt not found")
	ErrInvalidOptionPosition = errors.New("option position must be between 1 and 4")

	// Persistence errors
	ErrPersistenceFailure = errors.New("persistence failure")
)

// ===== CUSTOM ERROR TYPES =====

// PersistenceError wraps a store failure so callers can classify it without
// losing the underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (pe *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", pe.Op, pe.Err)
}

func (pe *PersistenceError) Unwrap() error { return pe.Err }

func (pe *PersistenceError) Is(target error) bool { return target == ErrPersistenceFailure }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStandardNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrChapterNotFound) ||
		errors.Is(err, ErrTestNotFound) ||
		errors.Is(err, ErrAttemptNotFound)
}

// IsValidation checks if error represents a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrUnknownTestType) ||
		errors.Is(err, ErrInvalidOptionPosition)
}

// IsInsufficientPool checks if error represents an exhausted question bank.
func IsInsufficientPool(err error) bool {
	return errors.Is(err, ErrInsufficientQuestionPool)
}

// IsPersistence checks if error represents a store failure.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistenceFailure)
}
