package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Contact  *ContactHandler
	Orders   *OrderHandler
}

func NewRouter(h Handlers, adminToken string, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(CORS(corsOrigins))

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Catalog.ListProducts)
		r.Get("/products/{productId}", h.Catalog.GetProduct)

		r.Route("/cart/{sessionId}", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productId}", h.Cart.SetQuantity)
			r.Delete("/items/{productId}", h.Cart.RemoveItem)
		})

		r.Post("/checkout/session", h.Checkout.CreateSession)
		r.Post("/webhooks/stripe", h.Webhook.Handle)
		r.Post("/contact", h.Contact.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuth(adminToken))
			r.Post("/products", h.Catalog.CreateProduct)
			r.Put("/products/{productId}", h.Catalog.UpdateProduct)
			r.Delete("/products/{productId}", h.Catalog.DeleteProduct)
			r.Get("/orders", h.Orders.ListOrders)
			r.Patch("/orders/{orderId}/status", h.Orders.UpdateStatus)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
