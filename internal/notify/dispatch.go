package notify

import (
	"context"
	"log"
	"strings"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
	"clientbook/pkg/util"
)

// Queue accepts outbound mail for an external delivery worker.
type Queue interface {
	Enqueue(ctx context.Context, msg *model.MailMessage) error
}

// Dispatcher validates and enqueues outbound e-mail. A nil error means the
// message was accepted for delivery, not that it was delivered.
type Dispatcher struct {
	queue Queue
}

func NewDispatcher(queue Queue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

type mailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=300"`
	HTML    string `json:"html" validate:"required"`
}

// Enqueue writes {to, message: {subject, html}} to the mail queue.
func (d *Dispatcher) Enqueue(ctx context.Context, to, subject, html string) error {
	req := mailRequest{To: strings.TrimSpace(to), Subject: strings.TrimSpace(subject), HTML: html}
	if err := util.ValidateStruct(&req); err != nil {
		return err
	}
	msg := &model.MailMessage{
		To:      req.To,
		Message: model.MailContent{Subject: req.Subject, HTML: req.HTML},
	}
	if err := d.queue.Enqueue(ctx, msg); err != nil {
		log.Printf("[mail] enqueue to %s failed: %v", req.To, err)
		return apperr.Wrap(apperr.ErrMailUnavailable, "mail.Enqueue", err)
	}
	return nil
}
