// internal/workers/booking/send-approval-email/service.go
package sendapprovalemail

import (
	"context"
	"sync"
	"time"

	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/supabase"
)

const TaskType = "send-approval-email"

// BookingFetcher is the slice of the storage client the service needs.
type BookingFetcher interface {
	FetchBooking(ctx context.Context, bookingID string) (*supabase.Booking, error)
}

// Service runs the notification pipeline for one booking change event:
// filter, enrich, resolve, render, dispatch. Each invocation is independent
// and holds no state across calls.
type Service struct {
	config   *Config
	bookings BookingFetcher
	contacts *ContactResolver
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewService(config *Config, bookings BookingFetcher, contacts *ContactResolver, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		config:   config,
		bookings: bookings,
		contacts: contacts,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:      time.Now,
	}
}

// WithClock fixes the renderer's clock; used by tests for deterministic output.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Execute processes one change event end to end. A rejected transition is a
// successful no-op, not an error. Enrichment and contact resolution run
// concurrently; both must finish before rendering, and an enrichment failure
// takes reporting priority over a contact failure.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !ShouldNotify(input) {
		s.logger.Debug("transition ignored", map[string]interface{}{
			"bookingId": input.Record.ID,
			"oldStatus": input.OldRecord.Status,
			"newStatus": input.Record.Status,
		})
		return &Output{
			Success:   true,
			Message:   "no notification needed",
			BookingID: input.Record.ID,
		}, nil
	}

	s.logger.Info("processing approved booking", map[string]interface{}{
		"bookingId": input.Record.ID,
		"userId":    input.Record.UserID,
	})

	var (
		wg         sync.WaitGroup
		booking    *supabase.Booking
		bookingErr error
		contact    *Contact
		contactErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		booking, bookingErr = s.bookings.FetchBooking(ctx, input.Record.ID)
	}()
	go func() {
		defer wg.Done()
		contact, contactErr = s.contacts.Resolve(ctx, input.Record.UserID)
	}()
	wg.Wait()

	if bookingErr != nil {
		return nil, bookingErr
	}
	if contactErr != nil {
		return nil, contactErr
	}

	payload, err := Render(input.Record, booking, *contact, s.now())
	if err != nil {
		return nil, err
	}

	result, err := s.notifier.Dispatch(ctx, payload, input.Record.ID)
	if err != nil {
		return nil, err
	}

	return &Output{
		Success:        result.Success,
		Message:        result.Message,
		Recipient:      result.Recipient,
		BookingID:      result.BookingID,
		NotificationID: result.NotificationID,
	}, nil
}
