package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artisanwoodcraft/storefront-go/internal/cart"
	"github.com/artisanwoodcraft/storefront-go/internal/catalog"
)

// ProductLookup resolves a product for adding to a cart.
type ProductLookup interface {
	GetByID(ctx context.Context, productID string) (*catalog.Product, error)
}

type CartHandler struct {
	carts    *cart.Store
	products ProductLookup
}

func NewCartHandler(carts *cart.Store, products ProductLookup) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

// cartView is the response shape for all cart endpoints: the items plus the
// derived count and total.
type cartView struct {
	Items     []cart.Item `json:"items"`
	ItemCount int         `json:"itemCount"`
	Total     float64     `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	items := c.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, ItemCount: c.ItemCount(), Total: c.Total()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(chi.URLParam(r, "sessionId"))
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.products.GetByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	c := h.carts.Get(sessionID)
	c.Add(*p)
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c := h.carts.Get(chi.URLParam(r, "sessionId"))
	c.SetQuantity(chi.URLParam(r, "productId"), body.Quantity)
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(chi.URLParam(r, "sessionId"))
	c.Remove(chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(chi.URLParam(r, "sessionId"))
	c.Clear()
	writeJSON(w, http.StatusOK, viewOf(c))
}
