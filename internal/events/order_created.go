package events

import (
	"time"

	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

const (
	OrderCreatedName    = "OrderCreated"
	OrderCreatedVersion = 1
)

// OrderCreated is published after a paid order has been persisted so
// downstream consumers (dashboards, fulfilment tooling) can react.
type OrderCreated struct {
	OrderID       string           `json:"orderId"`
	Items         []order.LineItem `json:"items"`
	CustomerEmail string           `json:"customerEmail"`
	Total         float64          `json:"total"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}
