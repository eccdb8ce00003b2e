// Package notify implements the notification transports behind the
// order.Notifier boundary: SMTP email for real delivery and a logging
// SMS stub. All sends are best-effort; callers only see a boolean-like
// error outcome.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"artdesk/internal/domain/order"
)

var submittedTmpl = template.Must(template.New("submitted").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New service request</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 8px; color: #888;">Order</td><td style="padding: 8px;">{{.ID}}</td></tr>
    <tr><td style="padding: 8px; color: #888;">Service</td><td style="padding: 8px;">{{.ServiceLabel}}</td></tr>
    <tr><td style="padding: 8px; color: #888;">Reply via</td><td style="padding: 8px;">{{.ReceiveChannel}}: {{.ReceiveTarget}}</td></tr>
    <tr><td style="padding: 8px; color: #888;">Extra service</td><td style="padding: 8px;">{{if .ExtraRequested}}yes{{else}}no{{end}}</td></tr>
    <tr><td style="padding: 8px; color: #888;">Submitted</td><td style="padding: 8px;">{{.CreatedAt}}</td></tr>
  </table>
  <p style="margin-top: 16px;"><a href="{{.AdminURL}}">Open the admin console</a></p>
</div>`))

var deliveredTmpl = template.Must(template.New("delivered").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your result is ready</h2>
  <p>Your "{{.ServiceLabel}}" request has been completed. Open the link below to view and download it:</p>
  <p style="margin: 24px 0;"><a href="{{.DeliveryURL}}">View the result</a></p>
  <p style="color: #888; font-size: 13px;">The link stays valid; you can open it any time.</p>
</div>`))

// EmailNotifier sends the two template kinds over SMTP.
type EmailNotifier struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	operators []string
	adminURL  string
	log       *zap.Logger
}

func NewEmailNotifier(host string, port int, user, pass, fromName string, operators []string, adminURL string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer:    gomail.NewDialer(host, port, user, pass),
		from:      user,
		fromName:  fromName,
		operators: operators,
		adminURL:  adminURL,
		log:       log,
	}
}

// SendOrderSubmitted notifies every configured operator address. Each
// recipient is messaged independently; one failing inbox does not stop
// the rest.
func (n *EmailNotifier) SendOrderSubmitted(ctx context.Context, o *order.Order) error {
	if len(n.operators) == 0 {
		return errors.New("no operator emails configured")
	}

	var body bytes.Buffer
	err := submittedTmpl.Execute(&body, map[string]interface{}{
		"ID":             o.ID,
		"ServiceLabel":   o.ServiceLabel,
		"ReceiveChannel": o.ReceiveChannel,
		"ReceiveTarget":  o.ReceiveTarget,
		"ExtraRequested": o.ExtraRequested,
		"CreatedAt":      o.CreatedAt.Format(time.RFC3339),
		"AdminURL":       n.adminURL,
	})
	if err != nil {
		return fmt.Errorf("render submitted template: %w", err)
	}

	subject := fmt.Sprintf("New service request: %s", o.ServiceLabel)
	var errs []error
	for _, to := range n.operators {
		if err := n.send(to, subject, body.String()); err != nil {
			n.log.Warn("operator email failed", zap.String("to", to), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendOrderDelivered mails the delivery link to the customer.
func (n *EmailNotifier) SendOrderDelivered(ctx context.Context, o *order.Order, deliveryURL string) error {
	var body bytes.Buffer
	err := deliveredTmpl.Execute(&body, map[string]interface{}{
		"ServiceLabel": o.ServiceLabel,
		"DeliveryURL":  deliveryURL,
	})
	if err != nil {
		return fmt.Errorf("render delivered template: %w", err)
	}

	subject := fmt.Sprintf("%s - your result is ready", o.ServiceLabel)
	return n.send(o.ReceiveTarget, subject, body.String())
}

func (n *EmailNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.from, n.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return n.dialer.DialAndSend(m)
}
