package order

import "time"

// LineItem is a flattened snapshot of a product at purchase time. Later
// product edits or deletions do not alter historical orders.
type LineItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

type Order struct {
	ID        string       `json:"id"`
	Items     []LineItem   `json:"items"`
	Customer  CustomerInfo `json:"customer"`
	Total     float64      `json:"total"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ItemsTotal is the canonical total: the sum of line item price x quantity.
func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
