package utils

import (
	"fmt"
	"strings"

	"github.com/keighl/postmark"

	"github.com/Changes18/poepoe/models"
)

// EmailService handles sending emails using Postmark. A service constructed
// without an API token is disabled and silently drops all sends.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
// When apiToken is empty the service is disabled.
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// Enabled reports whether the service has a configured Postmark client
func (es *EmailService) Enabled() bool {
	return es != nil && es.client != nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if !es.Enabled() {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the customer
func (es *EmailService) SendOrderConfirmationEmail(order *models.Order) error {
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s x %d - $%.2f</li>", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	subject := "Order Confirmation"
	content := fmt.Sprintf(
		"<p>Dear %s %s,</p><p>Thank you for your purchase! Your order has been placed successfully.</p><ul>%s</ul><p>Total: $%.2f</p>",
		order.Customer.FirstName, order.Customer.LastName, lines.String(), order.Total,
	)
	return es.SendEmail(order.Customer.Email, subject, content)
}
