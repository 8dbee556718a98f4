package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors (rejected before the processor is constructed)
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file exceeds maximum size")
	ErrEmptyTable        = errors.New("data file is empty")
	ErrTooFewColumns     = errors.New("data must have at least 2 columns")
	ErrNoRows            = errors.New("data must have at least 1 row")

	// Recipient validation errors
	ErrNoRecipients     = errors.New("no recipient email addresses provided")
	ErrInvalidRecipient = errors.New("invalid email address")

	// Delivery errors
	ErrSMTPNotConfigured = errors.New("smtp credentials not configured")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNoDataset       = errors.New("session has no dataset loaded")
)

// NewValidationError wraps a sentinel with field context
func NewValidationError(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// IsValidationError reports whether err is one of the pre-core input checks.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrEmptyTable) ||
		errors.Is(err, ErrTooFewColumns) ||
		errors.Is(err, ErrNoRows) ||
		errors.Is(err, ErrNoRecipients) ||
		errors.Is(err, ErrInvalidRecipient)
}
