package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{name: "payload invalid", err: NewPayloadInvalidError("bad json"), code: ErrCodePayloadInvalid, retryable: false},
		{name: "booking not found", err: NewBookingNotFoundError("B1"), code: ErrCodeBookingNotFound, retryable: false},
		{name: "storage query failed", err: NewStorageQueryFailedError(assert.AnError), code: ErrCodeStorageQueryFailed, retryable: true},
		{name: "user email not found", err: NewUserEmailNotFoundError("U1"), code: ErrCodeUserEmailNotFound, retryable: false},
		{name: "auth lookup failed", err: NewAuthLookupFailedError(assert.AnError), code: ErrCodeAuthLookupFailed, retryable: true},
		{name: "email send failed", err: NewEmailSendFailedError(assert.AnError), code: ErrCodeEmailSendFailed, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeBookingNotFound, CodeOf(NewBookingNotFoundError("B1")))

	wrapped := fmt.Errorf("pipeline failed: %w", NewStorageQueryFailedError(assert.AnError))
	assert.Equal(t, ErrCodeStorageQueryFailed, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(assert.AnError))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewBookingNotFoundError("B1")))
	assert.True(t, IsNotFound(NewUserEmailNotFoundError("U1")))
	assert.False(t, IsNotFound(NewStorageQueryFailedError(assert.AnError)))
	assert.False(t, IsNotFound(assert.AnError))
	assert.False(t, IsNotFound(nil))
}
