package service

import (
	"context"

	"devsolutions/internal/adapters/mail"
	"devsolutions/internal/services/api/contact/domain"
)

// MailDeliverer sends notifications through a mail transport
type MailDeliverer struct {
	T mail.Transport
}

// Deliver implements domain.Deliverer; transport errors are reported, never returned
func (d MailDeliverer) Deliver(ctx context.Context, n domain.Notification) domain.DeliveryResult {
	err := d.T.Send(ctx, mail.Message{
		ReplyTo: n.ReplyTo,
		Subject: n.Subject,
		Body:    n.Body,
	})
	return domain.DeliveryResult{Channel: d.T.Name(), Delivered: err == nil, Err: err}
}
