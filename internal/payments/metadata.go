package payments

import (
	"encoding/json"

	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

// rawItem mirrors one entry of the items metadata blob. Pointer fields let us
// tell a missing field apart from a zero value.
type rawItem struct {
	ID       *string  `json:"id"`
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
	Image    string   `json:"image"`
}

// decodeItems parses the JSON-encoded items array from session metadata.
// Malformed JSON degrades to an empty list: the processor retries on
// non-success responses, so a broken payload must never block the
// acknowledgment. Missing fields coerce to safe defaults.
func decodeItems(blob string) []order.LineItem {
	if blob == "" {
		return nil
	}

	var raw []rawItem
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil
	}

	items := make([]order.LineItem, 0, len(raw))
	for _, r := range raw {
		it := order.LineItem{Quantity: 1, Image: r.Image}
		if r.ID != nil {
			it.ProductID = *r.ID
		}
		if r.Name != nil {
			it.Name = *r.Name
		}
		if r.Price != nil {
			it.Price = *r.Price
		}
		if r.Quantity != nil {
			it.Quantity = *r.Quantity
		}
		items = append(items, it)
	}
	return items
}

// customerFromMetadata reconstructs the customer snapshot from the flattened
// metadata keys written at session creation. Missing keys read as "".
func customerFromMetadata(md map[string]string) order.CustomerInfo {
	return order.CustomerInfo{
		Name:    md["customer_name"],
		Email:   md["customer_email"],
		Phone:   md["customer_phone"],
		Address: md["customer_address"],
		Notes:   md["customer_notes"],
	}
}
