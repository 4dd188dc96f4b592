package services

import (
	"context"
	"time"

	"career-guide/logger"
)

// Event types
const (
	EventEmailSend           = "email.send"
	EventContactSubmitted    = "contact.submitted"
	EventAppointmentBooked   = "appointment.booked"
	EventAssessmentCompleted = "assessment.completed"
	EventUserRegistered      = "user.registered"
)

// Publisher writes a JSON-encodable value to a topic. kafka.Producer
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Events emits domain events. A nil *Events or one without a publisher
// drops everything.
type Events struct {
	pub   Publisher
	topic string
}

func NewEvents(pub Publisher, topic string) *Events {
	return &Events{pub: pub, topic: topic}
}

// Emit publishes best-effort; failures are logged and never returned.
func (e *Events) Emit(ctx context.Context, eventType, key string, data map[string]interface{}) {
	if e == nil || e.pub == nil {
		return
	}
	payload := map[string]interface{}{
		"event":     eventType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range data {
		payload[k] = v
	}
	if err := e.pub.Publish(ctx, e.topic, key, payload); err != nil {
		logger.Warn("Failed to publish %s event for %s: %v", eventType, key, err)
	}
}
