package notify

import (
	"context"

	"artdesk/internal/domain/order"
)

// Dispatcher routes notifications by channel: operators are always
// reached by email, customers by whatever channel they picked at
// submission.
type Dispatcher struct {
	email *EmailNotifier
	sms   *SMSNotifier
}

func NewDispatcher(email *EmailNotifier, sms *SMSNotifier) *Dispatcher {
	return &Dispatcher{email: email, sms: sms}
}

func (d *Dispatcher) OrderSubmitted(ctx context.Context, o *order.Order) error {
	return d.email.SendOrderSubmitted(ctx, o)
}

func (d *Dispatcher) OrderDelivered(ctx context.Context, o *order.Order, deliveryURL string) error {
	if o.ReceiveChannel == order.ChannelSMS {
		return d.sms.SendDelivered(ctx, o.ReceiveTarget, deliveryURL, o.ServiceLabel)
	}
	return d.email.SendOrderDelivered(ctx, o, deliveryURL)
}
