package notify

import (
	"context"

	"go.uber.org/zap"
)

// SMSNotifier is the development placeholder for the sms receive
// channel: it logs the message instead of dialing a provider and
// reports success. Swap in a real gateway client behind the same
// method when one is provisioned.
type SMSNotifier struct {
	log *zap.Logger
}

func NewSMSNotifier(log *zap.Logger) *SMSNotifier {
	return &SMSNotifier{log: log}
}

func (n *SMSNotifier) SendDelivered(ctx context.Context, phoneNumber, deliveryURL, serviceLabel string) error {
	n.log.Info("simulated sms delivery notification",
		zap.String("to", phoneNumber),
		zap.String("service", serviceLabel),
		zap.String("url", deliveryURL),
	)
	return nil
}
