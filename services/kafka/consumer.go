package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"career-guide/logger"

	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded event. A returned error sends the
// message to the dead-letter sink.
type EventHandler func(ctx context.Context, event map[string]interface{}) error

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads one topic as part of a consumer group and routes messages
// by their "event" field.
type Consumer struct {
	reader      messageReader
	deadLetters DeadLetterSink

	mu       sync.Mutex
	handlers map[string]EventHandler
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewConsumer(brokers []string, topic, groupID string, dlq DeadLetterSink) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            topic,
		GroupID:          groupID,
		StartOffset:      kafka.LastOffset,
		CommitInterval:   time.Second,
		MaxBytes:         10e6,
		SessionTimeout:   20 * time.Second,
		ReadBackoffMin:   100 * time.Millisecond,
		ReadBackoffMax:   1 * time.Second,
		QueueCapacity:    100,
		RebalanceTimeout: 60 * time.Second,
	})
	logger.Info("Kafka consumer initialized. Brokers=%v, Topic=%s, ConsumerGroup=%s", brokers, topic, groupID)
	return newConsumer(r, dlq)
}

func newConsumer(r messageReader, dlq DeadLetterSink) *Consumer {
	return &Consumer{
		reader:      r,
		deadLetters: dlq,
		handlers:    make(map[string]EventHandler),
	}
}

// Register routes events of the given type to h.
func (c *Consumer) Register(event string, h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
	logger.Info("Kafka handler registered for %s", event)
}

// Start consumes in a goroutine until Stop is called.
func (c *Consumer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		logger.Warn("Consumer already running")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.consume(ctx)
	logger.Info("Kafka consumer started")
}

func (c *Consumer) consume(ctx context.Context) {
	defer close(c.done)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) {
				continue
			}
			// group coordinator is still starting up
			if strings.Contains(err.Error(), "Group Coordinator Not Available") {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			logger.Warn("Kafka read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}
		c.HandleMessage(ctx, msg)
	}
}

// HandleMessage decodes and dispatches msg. It reports whether the message
// was processed; failures go to the dead-letter sink.
func (c *Consumer) HandleMessage(ctx context.Context, msg kafka.Message) bool {
	var event map[string]interface{}
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error("Error unmarshaling message: %v", err)
		c.deadLetter(ctx, msg, "Failed to unmarshal JSON: "+err.Error())
		return false
	}

	eventType, ok := event["event"].(string)
	if !ok {
		logger.Warn("Message does not contain event type")
		c.deadLetter(ctx, msg, "Message does not contain valid event type")
		return false
	}

	c.mu.Lock()
	h := c.handlers[eventType]
	c.mu.Unlock()
	if h == nil {
		logger.Warn("Unknown event type: %s", eventType)
		c.deadLetter(ctx, msg, "Unknown event type: "+eventType)
		return false
	}

	if err := h(ctx, event); err != nil {
		logger.Error("Error handling event type %s: %v", eventType, err)
		c.deadLetter(ctx, msg, fmt.Sprintf("Handler error: %v", err))
		return false
	}
	return true
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafka.Message, reason string) {
	if c.deadLetters == nil {
		return
	}
	if err := c.deadLetters.SendToDLQ(ctx, msg.Topic, string(msg.Key), msg.Value, reason); err != nil {
		logger.Error("Failed to send message to DLQ: %v", err)
	}
}

// Stop ends the consume loop and closes the reader.
func (c *Consumer) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if err := c.reader.Close(); err != nil {
		logger.Error("Error closing consumer: %v", err)
		return err
	}
	logger.Info("Kafka consumer stopped")
	return nil
}
