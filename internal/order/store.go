package order

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// Store is the source of truth for the order list, mirroring the catalog
// store contract: reads come from an in-memory snapshot, every successful
// mutation reloads the snapshot from the database.
type Store struct {
	repo Repository

	mu     sync.RWMutex
	orders []Order
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Load(ctx context.Context) error {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// PlaceOrder persists a new pending order built from line items and a
// customer snapshot. The total is recomputed here from the line items; a
// caller-supplied total is never trusted.
func (s *Store) PlaceOrder(ctx context.Context, items []LineItem, customer CustomerInfo) (*Order, error) {
	o := &Order{
		Items:     items,
		Customer:  customer,
		Total:     roundCents(sumItems(items)),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// RecordPaidOrder persists an order reconstructed from a completed payment
// session. The total here comes from the processor-reported amount, not from
// the line items, so it is stored as given.
func (s *Store) RecordPaidOrder(ctx context.Context, o *Order) error {
	if o.Status == "" {
		o.Status = StatusPending
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return err
	}
	return s.Load(ctx)
}

func (s *Store) UpdateStatus(ctx context.Context, orderID string, to Status) error {
	if err := s.repo.UpdateStatus(ctx, orderID, to); err != nil {
		return err
	}
	return s.Load(ctx)
}

func sumItems(items []LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
