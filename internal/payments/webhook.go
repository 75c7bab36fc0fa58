package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

const eventCheckoutSessionCompleted = "checkout.session.completed"

// ErrBadPayload marks a request body that could not be decoded (or failed
// signature verification). Maps to a 400 at the HTTP layer.
var ErrBadPayload = errors.New("bad webhook payload")

// OrderRecorder persists the order reconstructed from a completed session.
type OrderRecorder interface {
	RecordPaidOrder(ctx context.Context, o *order.Order) error
}

// Notifier sends the two post-order emails. Both are best-effort.
type Notifier interface {
	OrderReceived(ctx context.Context, o *order.Order) error
	OrderConfirmation(ctx context.Context, o *order.Order) error
}

// EventPublisher announces new orders to downstream consumers. Best-effort,
// same as the emails.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

// Handler processes inbound payment processor events. Safe for concurrent
// use: each event builds an independent order record.
type Handler struct {
	orders        OrderRecorder
	notifier      Notifier
	events        EventPublisher
	signingSecret string
	logger        *log.Logger
}

func NewHandler(orders OrderRecorder, notifier Notifier, events EventPublisher, signingSecret string, logger *log.Logger) *Handler {
	return &Handler{
		orders:        orders,
		notifier:      notifier,
		events:        events,
		signingSecret: signingSecret,
		logger:        logger,
	}
}

// HandleEvent decodes one processor event and, for a completed checkout
// session, persists the order and fires the notifications. Every event type
// other than checkout.session.completed is acknowledged without action.
//
// The order insert is the only step allowed to fail the request; email and
// event publish failures are logged and swallowed so the processor does not
// retry (and duplicate) an already-persisted order.
func (h *Handler) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := h.decodeEvent(payload, signature)
	if err != nil {
		return err
	}

	if string(event.Type) != eventCheckoutSessionCompleted {
		return nil
	}

	o := h.orderFromEvent(event)
	if err := h.orders.RecordPaidOrder(ctx, o); err != nil {
		return fmt.Errorf("record order: %w", err)
	}

	if err := h.notifier.OrderReceived(ctx, o); err != nil {
		h.logger.Printf("admin email for order %s failed: %v", o.ID, err)
	}
	if err := h.notifier.OrderConfirmation(ctx, o); err != nil {
		h.logger.Printf("customer email for order %s failed: %v", o.ID, err)
	}
	if h.events != nil {
		if err := h.events.PublishOrderCreated(ctx, o); err != nil {
			h.logger.Printf("publish order %s created: %v", o.ID, err)
		}
	}

	return nil
}

func (h *Handler) decodeEvent(payload []byte, signature string) (stripe.Event, error) {
	if h.signingSecret != "" {
		event, err := webhook.ConstructEvent(payload, signature, h.signingSecret)
		if err != nil {
			return stripe.Event{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
		return event, nil
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return event, nil
}

// orderFromEvent rebuilds the order from session metadata. Decoding is
// deliberately forgiving: a half-formed session still yields a well-formed
// (possibly empty) order rather than an error.
func (h *Handler) orderFromEvent(event stripe.Event) *order.Order {
	var sess stripe.CheckoutSession
	if event.Data != nil && len(event.Data.Raw) > 0 {
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			h.logger.Printf("decode session object: %v", err)
		}
	}

	return &order.Order{
		Items:     decodeItems(sess.Metadata["items"]),
		Customer:  customerFromMetadata(sess.Metadata),
		Total:     float64(sess.AmountTotal) / 100,
		Status:    order.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
