package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

// OrderStore is the slice of order.Store the admin endpoints need.
type OrderStore interface {
	Orders() []order.Order
	UpdateStatus(ctx context.Context, orderID string, to order.Status) error
}

type OrderHandler struct {
	store OrderStore
}

func NewOrderHandler(store OrderStore) *OrderHandler {
	return &OrderHandler{store: store}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.store.Orders()
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var body struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !body.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.UpdateStatus(ctx, orderID, body.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrBadTransition):
			writeError(w, http.StatusConflict, "status transition not allowed")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
}
