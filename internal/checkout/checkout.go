package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v80"

	"github.com/artisanwoodcraft/storefront-go/internal/cart"
	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

var (
	// ErrMissingField marks a locally rejected submission; no request has
	// been made to the payment processor.
	ErrMissingField = errors.New("missing required field")

	ErrNoSessionURL = errors.New("payment session has no url")
)

// SessionCreator matches session.Client from the Stripe SDK so tests can
// substitute a fake.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type Config struct {
	SuccessURL string
	CancelURL  string
	Currency   string
	Timeout    time.Duration
}

// Initiator validates a checkout submission and requests a hosted payment
// session from the processor.
type Initiator struct {
	sessions SessionCreator
	cfg      Config
}

func NewInitiator(sessions SessionCreator, cfg Config) *Initiator {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Initiator{sessions: sessions, cfg: cfg}
}

// ValidateCustomer rejects a submission whose required fields are blank after
// trimming whitespace. Notes are optional.
func ValidateCustomer(c order.CustomerInfo) error {
	required := []struct {
		field, value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.field)
		}
	}
	return nil
}

// FlattenCart turns cart items into the flattened line-item snapshots sent to
// the processor and later embedded in the order.
func FlattenCart(items []cart.Item) []order.LineItem {
	out := make([]order.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, order.LineItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Price:     it.Product.Price,
			Quantity:  it.Quantity,
			Image:     it.Product.Image,
		})
	}
	return out
}

// Start validates the submission, creates a payment session and returns the
// hosted payment URL the browser should redirect to. Validation failures are
// reported before any network call; remote failures leave the cart untouched.
func (i *Initiator) Start(ctx context.Context, items []order.LineItem, customer order.CustomerInfo) (string, error) {
	if err := ValidateCustomer(customer); err != nil {
		return "", err
	}

	encodedItems, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(i.cfg.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(it.Price * 100))),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(i.cfg.SuccessURL),
		CancelURL:          stripe.String(i.cfg.CancelURL),
	}
	params.Context = ctx
	params.Metadata = map[string]string{
		"customer_name":    customer.Name,
		"customer_email":   customer.Email,
		"customer_phone":   customer.Phone,
		"customer_address": customer.Address,
		"customer_notes":   customer.Notes,
		"items":            string(encodedItems),
	}

	sess, err := i.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}
	if sess == nil || sess.URL == "" {
		return "", ErrNoSessionURL
	}
	return sess.URL, nil
}
