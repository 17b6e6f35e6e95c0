// internal/handlers/webhook_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkhub-notifier/internal/common/errors"
	"parkhub-notifier/internal/common/logger"
	sae "parkhub-notifier/internal/workers/booking/send-approval-email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	output *sae.Output
	err    error
	calls  int
	input  *sae.Input
}

func (s *stubExecutor) Execute(_ context.Context, input *sae.Input) (*sae.Output, error) {
	s.calls++
	s.input = input
	return s.output, s.err
}

const approvedEventBody = `{
	"type": "UPDATE",
	"table": "bookings",
	"schema": "public",
	"record": {
		"id": "B1",
		"user_id": "U1",
		"status": "approved"
	},
	"old_record": {"status": "pending"}
}`

func createTestHandler(t *testing.T, executor *stubExecutor) *WebhookHandler {
	return NewWebhookHandler(executor, 10*time.Second, nil, logger.NewTestLogger(t))
}

func TestHandleBookingStatus_Success(t *testing.T) {
	executor := &stubExecutor{output: &sae.Output{
		Success:        true,
		Message:        "Booking confirmation email sent",
		Recipient:      "user@example.com",
		BookingID:      "B1",
		NotificationID: "n-1",
	}}
	handler := createTestHandler(t, executor)

	req := httptest.NewRequest(http.MethodPost, "/hooks/booking-status", strings.NewReader(approvedEventBody))
	rec := httptest.NewRecorder()

	handler.HandleBookingStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp sae.Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user@example.com", resp.Recipient)
	assert.Equal(t, "B1", resp.BookingID)

	// The parsed event reaches the pipeline intact.
	require.Equal(t, 1, executor.calls)
	require.NotNil(t, executor.input)
	assert.Equal(t, "B1", executor.input.Record.ID)
	assert.Equal(t, "pending", executor.input.OldRecord.Status)

	// The raw response carries the camelCase booking id field.
	assert.Contains(t, rec.Body.String(), `"bookingId":"B1"`)
}

func TestHandleBookingStatus_NoOp(t *testing.T) {
	executor := &stubExecutor{output: &sae.Output{
		Success:   true,
		Message:   "no notification needed",
		BookingID: "B1",
	}}
	handler := createTestHandler(t, executor)

	body := strings.Replace(approvedEventBody, `"old_record": {"status": "pending"}`, `"old_record": {"status": "approved"}`, 1)
	req := httptest.NewRequest(http.MethodPost, "/hooks/booking-status", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleBookingStatus(rec, req)

	// Ignored transitions still answer 200.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no notification needed")
}

func TestHandleBookingStatus_MissingOldStatusIsNoOp(t *testing.T) {
	executor := &stubExecutor{output: &sae.Output{
		Success:   true,
		Message:   "no notification needed",
		BookingID: "B1",
	}}
	handler := createTestHandler(t, executor)

	// An event without old_record.status cannot match the transition; it is
	// a no-op for the pipeline, not a payload error.
	body := `{"record": {"id": "B1", "user_id": "U1", "status": "approved"}, "old_record": {}}`
	req := httptest.NewRequest(http.MethodPost, "/hooks/booking-status", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleBookingStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no notification needed")
	assert.Equal(t, 1, executor.calls)
}

func TestHandleBookingStatus_PipelineFailure(t *testing.T) {
	executor := &stubExecutor{err: errors.NewBookingNotFoundError("B1")}
	handler := createTestHandler(t, executor)

	req := httptest.NewRequest(http.MethodPost, "/hooks/booking-status", strings.NewReader(approvedEventBody))
	rec := httptest.NewRecorder()

	handler.HandleBookingStatus(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Booking not found")
}

func TestHandleBookingStatus_MalformedPayload(t *testing.T) {
	executor := &stubExecutor{}
	handler := createTestHandler(t, executor)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json"},
		{name: "missing record", body: `{"old_record": {"status": "pending"}}`},
		{name: "empty body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hooks/booking-status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.HandleBookingStatus(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}

	// Invalid payloads never reach the pipeline.
	assert.Equal(t, 0, executor.calls)
}

func TestHandleBookingStatus_MethodNotAllowed(t *testing.T) {
	executor := &stubExecutor{}
	handler := createTestHandler(t, executor)

	req := httptest.NewRequest(http.MethodGet, "/hooks/booking-status", nil)
	rec := httptest.NewRecorder()

	handler.HandleBookingStatus(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, executor.calls)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
