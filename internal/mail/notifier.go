package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

// Sender is implemented by Client; tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Notifier composes and sends the storefront's transactional emails.
type Notifier struct {
	sender     Sender
	from       string
	adminEmail string
}

func NewNotifier(sender Sender, from, adminEmail string) *Notifier {
	return &Notifier{sender: sender, from: from, adminEmail: adminEmail}
}

// OrderReceived sends the admin order summary.
func (n *Notifier) OrderReceived(ctx context.Context, o *order.Order) error {
	html, err := render(orderReceivedTmpl, o)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Message{
		From:    n.from,
		To:      []string{n.adminEmail},
		Subject: "New Order Received",
		HTML:    html,
	})
}

// OrderConfirmation sends the customer confirmation.
func (n *Notifier) OrderConfirmation(ctx context.Context, o *order.Order) error {
	html, err := render(orderConfirmationTmpl, o)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Message{
		From:    n.from,
		To:      []string{o.Customer.Email},
		Subject: "Thank you for your order!",
		HTML:    html,
	})
}

type contactSubmission struct {
	Name    string
	Email   string
	Message string
}

// ContactMessage forwards a contact-form submission to the admin inbox.
func (n *Notifier) ContactMessage(ctx context.Context, name, email, message string) error {
	html, err := render(contactMessageTmpl, contactSubmission{Name: name, Email: email, Message: message})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Message{
		From:    n.from,
		To:      []string{n.adminEmail},
		Subject: fmt.Sprintf("New message from %s", name),
		HTML:    html,
	})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
