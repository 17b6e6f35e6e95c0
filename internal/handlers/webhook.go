// internal/handlers/webhook.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"parkhub-notifier/internal/common/errors"
	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/observability"
	sae "parkhub-notifier/internal/workers/booking/send-approval-email"
)

// PipelineExecutor is the slice of the worker service this handler needs.
type PipelineExecutor interface {
	Execute(ctx context.Context, input *sae.Input) (*sae.Output, error)
}

// WebhookHandler receives booking status change webhooks and drives the
// notification pipeline. Every invocation gets a definitive JSON response;
// both "processed" and "no-op" answer 200, internal failures answer 500.
type WebhookHandler struct {
	service PipelineExecutor
	timeout time.Duration
	obs     *observability.Observability
	logger  logger.Logger
}

func NewWebhookHandler(service PipelineExecutor, timeout time.Duration, obs *observability.Observability, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		timeout: timeout,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"handler": "booking-status"}),
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HandleBookingStatus processes one change event per request.
func (h *WebhookHandler) HandleBookingStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	// Webhook payloads are small; cap the body defensively.
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, r, errors.NewPayloadInvalidError(err.Error()), start)
		return
	}

	if err := sae.ValidateInput(body); err != nil {
		h.writeError(w, r, err, start)
		return
	}

	var input sae.Input
	if err := json.Unmarshal(body, &input); err != nil {
		h.writeError(w, r, errors.NewPayloadInvalidError(err.Error()), start)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	output, err := h.service.Execute(ctx, &input)
	if err != nil {
		h.writeError(w, r, err, start)
		return
	}

	if h.obs != nil {
		h.obs.RecordNotificationDuration(r.Context(), time.Since(start), "success")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(output)
}

func (h *WebhookHandler) writeError(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	h.logger.Error("booking notification failed", map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.CodeOf(err)),
	})
	if h.obs != nil {
		h.obs.RecordNotificationProcessed(r.Context(), "error")
		h.obs.RecordNotificationDuration(r.Context(), time.Since(start), "error")
	}

	message := err.Error()
	if stdErr, ok := err.(*errors.StandardError); ok {
		message = stdErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message})
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
