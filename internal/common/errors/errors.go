// Package errors provides standardized error handling for the notification pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePayloadInvalid ErrorCode = "PAYLOAD_INVALID"

	ErrCodeBookingNotFound    ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeStorageQueryFailed ErrorCode = "STORAGE_QUERY_FAILED"

	ErrCodeUserEmailNotFound ErrorCode = "USER_EMAIL_NOT_FOUND"
	ErrCodeAuthLookupFailed  ErrorCode = "AUTH_LOOKUP_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewPayloadInvalidError creates a non-retryable error for malformed trigger payloads.
func NewPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadInvalid,
		Message:   "Invalid webhook payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBookingNotFoundError creates a non-retryable error for an empty storage result.
func NewBookingNotFoundError(bookingID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBookingNotFound,
		Message:   "Booking not found",
		Details:   fmt.Sprintf("bookingId: %s", bookingID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageQueryFailedError creates a retryable error for storage read failures.
func NewStorageQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageQueryFailed,
		Message:   "Storage query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserEmailNotFoundError creates a non-retryable error for a missing contact address.
func NewUserEmailNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserEmailNotFound,
		Message:   "User email not found",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthLookupFailedError creates a retryable error for identity service failures.
func NewAuthLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthLookupFailed,
		Message:   "Identity service lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable error for transport delivery failures.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Notification delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the error code from err when it wraps a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsNotFound reports whether err is one of the terminal not-found kinds.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeBookingNotFound || code == ErrCodeUserEmailNotFound
}
