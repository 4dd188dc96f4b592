package services

import (
	"context"
	"fmt"
	"time"

	"career-guide/config"
	"career-guide/errors"
	"career-guide/logger"
	"career-guide/models"

	"gopkg.in/gomail.v2"
)

// Email is one outgoing HTML message.
type Email struct {
	To      string `json:"recipient"`
	Subject string `json:"subject"`
	HTML    string `json:"body"`
}

// Mailer delivers an Email or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// ErrEmailDisabled is returned by DisabledMailer. Callers treat it as a
// deliberate skip, not a failure.
var ErrEmailDisabled = errors.E(errors.Other, "email delivery is not configured")

// SMTPSender delivers mail directly over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.Sender(),
	}
}

func (s *SMTPSender) Send(_ context.Context, e Email) error {
	logger.Debug("Sending email via SMTP - Recipient: %s", e.To)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", e.To)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/html", e.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.Error("Failed to send email to %s: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent to %s", e.To)
	return nil
}

// DisabledMailer stands in when no SMTP credentials are configured.
type DisabledMailer struct{}

func (DisabledMailer) Send(_ context.Context, e Email) error {
	logger.Info("Email disabled, not sending %q to %s", e.Subject, e.To)
	return ErrEmailDisabled
}

// QueueMailer publishes email.send events for the email worker instead of
// talking to SMTP itself.
type QueueMailer struct {
	pub   Publisher
	topic string
}

func NewQueueMailer(pub Publisher, topic string) *QueueMailer {
	return &QueueMailer{pub: pub, topic: topic}
}

func (q *QueueMailer) Send(ctx context.Context, e Email) error {
	payload := map[string]interface{}{
		"event":     EventEmailSend,
		"recipient": e.To,
		"subject":   e.Subject,
		"body":      e.HTML,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := q.pub.Publish(ctx, q.topic, "email-"+e.To, payload); err != nil {
		logger.Error("Failed to publish email event to Kafka: %v", err)
		return fmt.Errorf("failed to queue email: %w", err)
	}
	logger.Info("Email event queued to Kafka: %s", e.To)
	return nil
}

// NewMailer picks the delivery path from configuration. pub is only used in
// kafka delivery mode.
func NewMailer(cfg config.Config, pub Publisher) Mailer {
	switch {
	case !cfg.EmailEnabled():
		logger.Warn("SMTP credentials not configured, email delivery disabled")
		return DisabledMailer{}
	case cfg.EmailDelivery == config.DeliveryKafka && pub != nil:
		return NewQueueMailer(pub, cfg.KafkaEmailTopic)
	default:
		return NewSMTPSender(cfg)
	}
}

// deliveryStatus is the status recorded when m accepts a message.
func deliveryStatus(m Mailer) string {
	if _, ok := m.(*QueueMailer); ok {
		return models.EmailQueued
	}
	return models.EmailSent
}

// EmailWorker handles email.send events taken off the queue.
type EmailWorker struct {
	sender Mailer
}

func NewEmailWorker(sender Mailer) *EmailWorker {
	return &EmailWorker{sender: sender}
}

// HandleEmailSend is registered with the Kafka consumer.
func (w *EmailWorker) HandleEmailSend(ctx context.Context, event map[string]interface{}) error {
	recipient, ok := event["recipient"].(string)
	if !ok || recipient == "" {
		return fmt.Errorf("invalid recipient in email event")
	}
	subject, ok := event["subject"].(string)
	if !ok || subject == "" {
		return fmt.Errorf("invalid subject in email event")
	}
	body, ok := event["body"].(string)
	if !ok || body == "" {
		return fmt.Errorf("invalid body in email event")
	}
	return w.sender.Send(ctx, Email{To: recipient, Subject: subject, HTML: body})
}
