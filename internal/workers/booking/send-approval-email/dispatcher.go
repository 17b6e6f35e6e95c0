// internal/workers/booking/send-approval-email/dispatcher.go
package sendapprovalemail

import (
	"context"

	"parkhub-notifier/internal/common/errors"
	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
)

// SESService is the slice of the SES client the email notifier needs.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Notifier delivers a rendered payload. The variant is chosen once at
// construction time: a log recorder when no transport is configured, an
// email sender otherwise.
type Notifier interface {
	Dispatch(ctx context.Context, payload *Payload, bookingID string) (*DispatchResult, error)
}

// LogNotifier records payloads to the structured log instead of delivering
// them. This is the designed fallback for environments without a transport,
// not a failure mode.
type LogNotifier struct {
	logger logger.Logger
	obs    *observability.Observability
}

func NewLogNotifier(log logger.Logger, obs *observability.Observability) *LogNotifier {
	return &LogNotifier{logger: log, obs: obs}
}

func (n *LogNotifier) Dispatch(ctx context.Context, payload *Payload, bookingID string) (*DispatchResult, error) {
	n.logger.Info("notification recorded", map[string]interface{}{
		"subject":    payload.Subject,
		"preview":    payload.Preview,
		"recipient":  payload.Recipient.Email,
		"bodyLength": len(payload.Body),
		"bookingId":  bookingID,
	})
	if n.obs != nil {
		n.obs.RecordNotificationProcessed(ctx, "recorded")
	}

	return &DispatchResult{
		Success:        true,
		Message:        "notification recorded, not delivered",
		Recipient:      payload.Recipient.Email,
		BookingID:      bookingID,
		NotificationID: uuid.New().String(),
	}, nil
}

// EmailNotifier submits payloads through SES. A transport failure is
// reported once; there is no retry here.
type EmailNotifier struct {
	sesClient SESService
	fromEmail string
	logger    logger.Logger
	obs       *observability.Observability
}

func NewEmailNotifier(sesClient SESService, fromEmail string, log logger.Logger, obs *observability.Observability) *EmailNotifier {
	return &EmailNotifier{
		sesClient: sesClient,
		fromEmail: fromEmail,
		logger:    log,
		obs:       obs,
	}
}

func (n *EmailNotifier) Dispatch(ctx context.Context, payload *Payload, bookingID string) (*DispatchResult, error) {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{payload.Recipient.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(payload.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(payload.Body)},
			},
		},
		Source: aws.String(n.fromEmail),
	})
	if err != nil {
		n.logger.Error("email send failed", map[string]interface{}{
			"error":     err.Error(),
			"recipient": payload.Recipient.Email,
			"bookingId": bookingID,
		})
		if n.obs != nil {
			n.obs.RecordNotificationProcessed(ctx, "failed")
		}
		return nil, errors.NewEmailSendFailedError(err)
	}

	n.logger.Info("email sent", map[string]interface{}{
		"subject":   payload.Subject,
		"recipient": payload.Recipient.Email,
		"bookingId": bookingID,
	})
	if n.obs != nil {
		n.obs.RecordNotificationProcessed(ctx, "sent")
	}

	return &DispatchResult{
		Success:        true,
		Message:        "Booking confirmation email sent",
		Recipient:      payload.Recipient.Email,
		BookingID:      bookingID,
		NotificationID: uuid.New().String(),
	}, nil
}
