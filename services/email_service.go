package services

import (
	"fmt"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.APIKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email sending disabled, skipping", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", es.cfg.Email.FromName, es.cfg.Email.FromEmail),
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendWelcomeEmail greets a newly registered user. Failures are logged by
// the caller; registration never fails because of email delivery.
func (es *EmailService) SendWelcomeEmail(user *tables.User) error {
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Welcome to %s</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your account has been created. You can now browse the catalog, build a wishlist and place orders.</p>
				</div>
				<div class="footer">
					<p>If you did not create this account, please contact support.</p>
				</div>
			</div>
		</body>
		</html>
	`, es.cfg.Server.AppName, user.Fullname)

	return es.SendEmail([]string{user.Email}, fmt.Sprintf("Welcome to %s", es.cfg.Server.AppName), body)
}

// SendOrderConfirmationEmail confirms a freshly placed order with its
// number, line items and total.
func (es *EmailService) SendOrderConfirmationEmail(user *tables.User, order *tables.Order) error {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td style="text-align: center;">%d</td><td style="text-align: right;">%s</td></tr>`,
			item.ProductName, item.Quantity, formatCents(item.UnitPrice*uint64(item.Quantity)),
		))
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				table { width: 100%%; border-collapse: collapse; }
				th, td { padding: 8px; border-bottom: 1px solid #ddd; }
				.total { font-weight: bold; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Order %s confirmed</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Thanks for your order. We will let you know when it ships.</p>
					<table>
						<tr><th style="text-align: left;">Item</th><th>Qty</th><th style="text-align: right;">Price</th></tr>
						%s
						<tr class="total"><td colspan="2">Total</td><td style="text-align: right;">%s</td></tr>
					</table>
				</div>
				<div class="footer">
					<p>Order number: %s</p>
				</div>
			</div>
		</body>
		</html>
	`, order.OrderNumber, user.Fullname, items.String(), formatCents(order.TotalPrice), order.OrderNumber)

	return es.SendEmail([]string{user.Email}, fmt.Sprintf("Order confirmation %s", order.OrderNumber), body)
}

// formatCents renders a cent amount as a decimal string, e.g. 1250 -> "12.50"
func formatCents(cents uint64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
