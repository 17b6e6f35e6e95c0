// internal/workers/booking/send-approval-email/service_test.go
package sendapprovalemail

import (
	"context"
	"testing"
	"time"

	"parkhub-notifier/internal/common/errors"
	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockBookingFetcher struct {
	booking *supabase.Booking
	err     error
	calls   int
}

func (m *mockBookingFetcher) FetchBooking(_ context.Context, _ string) (*supabase.Booking, error) {
	m.calls++
	return m.booking, m.err
}

type mockUserService struct {
	user  *supabase.User
	err   error
	calls int
}

func (m *mockUserService) GetUser(_ context.Context, _ string) (*supabase.User, error) {
	m.calls++
	return m.user, m.err
}

type mockNotifier struct {
	result  *DispatchResult
	err     error
	calls   int
	payload *Payload
}

func (m *mockNotifier) Dispatch(_ context.Context, payload *Payload, bookingID string) (*DispatchResult, error) {
	m.calls++
	m.payload = payload
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &DispatchResult{
		Success:        true,
		Message:        "notification recorded, not delivered",
		Recipient:      payload.Recipient.Email,
		BookingID:      bookingID,
		NotificationID: "n-1",
	}, nil
}

func createTestInput() *Input {
	return &Input{
		Type:      "UPDATE",
		Table:     "bookings",
		Schema:    "public",
		Record:    createTestRecord(),
		OldRecord: OldRecord{Status: StatusPending},
	}
}

func createTestService(t *testing.T, bookings *mockBookingFetcher, users *mockUserService, notifier *mockNotifier) *Service {
	testLog := logger.NewTestLogger(t)
	contacts := NewContactResolver(users, nil, 5*time.Minute, testLog)
	svc := NewService(createTestConfig(), bookings, contacts, notifier, testLog)
	return svc.WithClock(func() time.Time { return fixedClock })
}

func createTestConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestService_Execute_ApprovedBooking(t *testing.T) {
	bookings := &mockBookingFetcher{booking: createTestBooking()}
	users := &mockUserService{user: &supabase.User{ID: "U1", Email: "user@example.com"}}
	notifier := &mockNotifier{}

	svc := createTestService(t, bookings, users, notifier)

	output, err := svc.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "user@example.com", output.Recipient)
	assert.Equal(t, "B1", output.BookingID)
	assert.NotEmpty(t, output.NotificationID)

	// Exactly one enrichment call, one identity call, one dispatch.
	assert.Equal(t, 1, bookings.calls)
	assert.Equal(t, 1, users.calls)
	assert.Equal(t, 1, notifier.calls)

	require.NotNil(t, notifier.payload)
	assert.Contains(t, notifier.payload.Subject, "A12")
	assert.Contains(t, notifier.payload.Body, "2 hours")
	assert.Contains(t, notifier.payload.Body, "Central Mall")
	assert.Contains(t, notifier.payload.Body, "MG Road")
	assert.Contains(t, notifier.payload.Body, "KA01AB1234")
}

func TestService_Execute_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name      string
		oldStatus string
		newStatus string
	}{
		{name: "already approved", oldStatus: StatusApproved, newStatus: StatusApproved},
		{name: "rejected", oldStatus: StatusPending, newStatus: StatusRejected},
		{name: "expired", oldStatus: StatusApproved, newStatus: StatusExpired},
		{name: "missing statuses", oldStatus: "", newStatus: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingFetcher{booking: createTestBooking()}
			users := &mockUserService{user: &supabase.User{ID: "U1", Email: "user@example.com"}}
			notifier := &mockNotifier{}

			svc := createTestService(t, bookings, users, notifier)

			input := createTestInput()
			input.OldRecord.Status = tt.oldStatus
			input.Record.Status = tt.newStatus

			output, err := svc.Execute(context.Background(), input)
			require.NoError(t, err)

			assert.True(t, output.Success)
			assert.Equal(t, "no notification needed", output.Message)

			// No lookups and no dispatch for a filtered event.
			assert.Equal(t, 0, bookings.calls)
			assert.Equal(t, 0, users.calls)
			assert.Equal(t, 0, notifier.calls)
		})
	}
}

func TestService_Execute_BookingNotFound(t *testing.T) {
	bookings := &mockBookingFetcher{err: errors.NewBookingNotFoundError("B1")}
	users := &mockUserService{user: &supabase.User{ID: "U1", Email: "user@example.com"}}
	notifier := &mockNotifier{}

	svc := createTestService(t, bookings, users, notifier)

	output, err := svc.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeBookingNotFound, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "Booking not found")

	// Enrichment failure is terminal; nothing is dispatched.
	assert.Equal(t, 0, notifier.calls)
}

func TestService_Execute_EnrichmentFailureWinsOverContactFailure(t *testing.T) {
	bookings := &mockBookingFetcher{err: errors.NewBookingNotFoundError("B1")}
	users := &mockUserService{err: errors.NewUserEmailNotFoundError("U1")}
	notifier := &mockNotifier{}

	svc := createTestService(t, bookings, users, notifier)

	_, err := svc.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBookingNotFound, errors.CodeOf(err))
	assert.Equal(t, 0, notifier.calls)
}

func TestService_Execute_UserEmailMissing(t *testing.T) {
	bookings := &mockBookingFetcher{booking: createTestBooking()}
	users := &mockUserService{user: &supabase.User{ID: "U1", Email: ""}}
	notifier := &mockNotifier{}

	svc := createTestService(t, bookings, users, notifier)

	output, err := svc.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeUserEmailNotFound, errors.CodeOf(err))
	assert.Equal(t, 0, notifier.calls)
}

func TestService_Execute_MissingRelationsStillDispatches(t *testing.T) {
	bookings := &mockBookingFetcher{booking: &supabase.Booking{ID: "B1", UserID: "U1"}}
	users := &mockUserService{user: &supabase.User{ID: "U1", Email: "user@example.com"}}
	notifier := &mockNotifier{}

	svc := createTestService(t, bookings, users, notifier)

	output, err := svc.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.True(t, output.Success)
	require.NotNil(t, notifier.payload)
	assert.Contains(t, notifier.payload.Subject, "N/A")
	assert.Contains(t, notifier.payload.Body, "N/A")
}

func TestService_Execute_TransportFailure(t *testing.T) {
	bookings := &mockBookingFetcher{booking: createTestBooking()}
	users := &mockUserService{user: &supabase.User{ID: "U1", Email: "user@example.com"}}
	notifier := &mockNotifier{err: errors.NewEmailSendFailedError(assert.AnError)}

	svc := createTestService(t, bookings, users, notifier)

	output, err := svc.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeEmailSendFailed, errors.CodeOf(err))
	assert.Equal(t, 1, notifier.calls)
}
