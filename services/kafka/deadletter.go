package kafka

import (
	"context"

	"career-guide/models"
	"career-guide/repository"
)

// DeadLetterSink stores a message that could not be published or processed.
type DeadLetterSink interface {
	SendToDLQ(ctx context.Context, topic, key string, value []byte, reason string) error
}

// DeadLetterRecorder keeps dead letters in the dead_letters collection.
type DeadLetterRecorder struct {
	repo *repository.DeadLetters
}

func NewDeadLetterRecorder(repo *repository.DeadLetters) *DeadLetterRecorder {
	return &DeadLetterRecorder{repo: repo}
}

func (d *DeadLetterRecorder) SendToDLQ(ctx context.Context, topic, key string, value []byte, reason string) error {
	_, err := d.repo.Create(ctx, models.DeadLetter{
		Topic:   topic,
		Key:     key,
		Payload: string(value),
		Error:   reason,
	})
	return err
}
