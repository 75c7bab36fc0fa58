package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/artisanwoodcraft/storefront-go/internal/cart"
	"github.com/artisanwoodcraft/storefront-go/internal/checkout"
	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

// SessionStarter is the slice of checkout.Initiator the HTTP layer needs.
type SessionStarter interface {
	Start(ctx context.Context, items []order.LineItem, customer order.CustomerInfo) (string, error)
}

type CheckoutHandler struct {
	initiator SessionStarter
	carts     *cart.Store
}

func NewCheckoutHandler(initiator SessionStarter, carts *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{initiator: initiator, carts: carts}
}

type checkoutRequest struct {
	// SessionID is optional; when set, a successful session creation drops
	// the server-held cart for that session so back-navigation cannot
	// resubmit stale contents.
	SessionID string             `json:"sessionId,omitempty"`
	Items     []order.LineItem   `json:"items"`
	Customer  order.CustomerInfo `json:"customer"`
}

// CreateSession validates the submission and returns the hosted payment URL.
// Validation failures are reported without touching the processor; remote
// failures leave the cart untouched.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	url, err := h.initiator.Start(r.Context(), req.Items, req.Customer)
	if err != nil {
		if errors.Is(err, checkout.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "unable to start checkout")
		return
	}

	if req.SessionID != "" && h.carts != nil {
		h.carts.Drop(req.SessionID)
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
