// utils/email.go
package utils

import (
	"fmt"
	"log"
	"strings"

	"github.com/keighl/postmark"

	"go-bulkorder/models"
)

// EmailService handles sending emails using Postmark. All sends are
// best-effort: callers run them off the request path and only log
// failures. With no API token configured the service is disabled and
// every send is a logged no-op.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set; email notifications disabled")
		return &EmailService{sender: sender}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		log.Printf("email disabled; skipping %q to %s", subject, toEmail)
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

// SendOrderConfirmationEmail sends an order confirmation to the buyer.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.OrderView) error {
	subject := fmt.Sprintf("Order Confirmation - Order #%s", order.ID.Hex())
	return es.SendEmail(toEmail, subject, orderConfirmationBody(order))
}

// SendOrderCancellationEmail notifies the buyer that their order was cancelled.
func (es *EmailService) SendOrderCancellationEmail(toEmail string, order models.OrderView) error {
	subject := fmt.Sprintf("Order Cancelled - Order #%s", order.ID.Hex())
	htmlContent := fmt.Sprintf(
		"<h2>Order Cancelled</h2><p>Dear %s,</p><p>Your order (ID: %s) has been cancelled as requested. No further action is needed.</p><p>Best regards,<br/>Bulk Ordering Platform Team</p>",
		order.BuyerName,
		order.ID.Hex(),
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendStatusUpdateEmail notifies the buyer about a status change.
func (es *EmailService) SendStatusUpdateEmail(toEmail string, order models.Order) error {
	subject := "Order Status Updated - Bulk Ordering Platform"
	htmlContent := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your order (ID: %s) status has been updated to <strong>%s</strong>.</p><p>Best regards,<br/>Bulk Ordering Platform Team</p>",
		order.BuyerName,
		order.ID.Hex(),
		order.Status,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

func orderConfirmationBody(order models.OrderView) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%s (%d kg)</li>", item.Product.Name, item.Quantity)
	}

	return fmt.Sprintf(
		"<h2>Order Confirmation</h2>"+
			"<p>Dear %s,</p>"+
			"<p>Thank you for your order! Below are the details:</p>"+
			"<ul>"+
			"<li><strong>Order ID:</strong> %s</li>"+
			"<li><strong>Items:</strong><ul>%s</ul></li>"+
			"<li><strong>Contact:</strong> %s</li>"+
			"<li><strong>Address:</strong> %s</li>"+
			"<li><strong>Status:</strong> %s</li>"+
			"<li><strong>Total:</strong> $%.2f</li>"+
			"</ul>"+
			"<p>We’ll notify you when your order status changes.</p>"+
			"<p>Best regards,<br/>Bulk Ordering Platform Team</p>",
		order.BuyerName,
		order.ID.Hex(),
		items.String(),
		order.Contact,
		order.Address,
		order.Status,
		order.Total,
	)
}
