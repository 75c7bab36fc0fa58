package catalog

import "time"

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Image       string            `json:"image,omitempty"`
	Category    string            `json:"category"`
	Description string            `json:"description,omitempty"`
	Specs       map[string]string `json:"specs"`
	Featured    bool              `json:"featured"`
	CreatedAt   time.Time         `json:"createdAt"`
}
