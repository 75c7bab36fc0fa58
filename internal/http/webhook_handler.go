package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/artisanwoodcraft/storefront-go/internal/payments"
)

const maxWebhookBody = 1 << 20

// EventProcessor is the slice of payments.Handler the HTTP layer needs.
type EventProcessor interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type WebhookHandler struct {
	processor EventProcessor
}

func NewWebhookHandler(processor EventProcessor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.processor.HandleEvent(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
		if errors.Is(err, payments.ErrBadPayload) {
			writeError(w, http.StatusBadRequest, "bad payload")
			return
		}
		// Non-success makes the processor retry the event.
		writeError(w, http.StatusInternalServerError, "failed to process event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
