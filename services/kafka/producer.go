// Package kafka publishes domain events and queued emails to Kafka and runs
// the consumer that works the email queue.
package kafka

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"career-guide/logger"

	"github.com/segmentio/kafka-go"
)

const publishAttempts = 3

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes JSON messages with a bounded retry. Messages that still
// fail are handed to the dead-letter sink when one is set.
type Producer struct {
	mu          sync.Mutex
	writer      messageWriter
	deadLetters DeadLetterSink
	connected   bool
	backoff     func(attempt int) time.Duration
}

// NewProducer creates a writer for brokers and creates topics in the
// background.
func NewProducer(brokers []string, topics ...string) *Producer {
	ensureTopicsExist(brokers, topics)

	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
		Async:    false,
		// Set a reasonable write timeout
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}
	logger.Info("Kafka producer initialized. Brokers=%v", brokers)
	return newProducer(w)
}

func newProducer(w messageWriter) *Producer {
	return &Producer{
		writer:    w,
		connected: true,
		backoff: func(attempt int) time.Duration {
			return time.Duration(math.Pow(2, float64(attempt))) * time.Second
		},
	}
}

// SetDeadLetterSink records messages that exhaust their publish attempts.
func (p *Producer) SetDeadLetterSink(sink DeadLetterSink) {
	p.mu.Lock()
	p.deadLetters = sink
	p.mu.Unlock()
}

// Publish marshals value to JSON and writes it to topic under key.
func (p *Producer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < publishAttempts; attempt++ {
		wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := p.writer.WriteMessages(wctx, msg)
		cancel()

		if err == nil {
			p.connected = true
			return nil
		}

		lastErr = err
		p.connected = false
		if attempt < publishAttempts-1 {
			wait := p.backoff(attempt)
			logger.Warn("Kafka publish attempt %d/%d failed, retrying in %v: %v", attempt+1, publishAttempts, wait, err)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			logger.Error("Kafka publish failed after %d attempts: %v", publishAttempts, err)
		}
	}

	if p.deadLetters != nil {
		logger.Info("Sending failed message to DLQ. Topic: %s, Key: %s", topic, key)
		if dlqErr := p.deadLetters.SendToDLQ(ctx, topic, key, payload, lastErr.Error()); dlqErr != nil {
			logger.Error("Failed to send message to DLQ: %v", dlqErr)
		}
	}
	return lastErr
}

// IsConnected reports whether the last write succeeded.
func (p *Producer) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Close()
}

// ensureTopicsExist creates topics if they don't already exist. It runs in
// the background so a slow broker does not hold up startup.
func ensureTopicsExist(brokers, topics []string) {
	if len(brokers) == 0 || len(topics) == 0 {
		return
	}
	go func() {
		const maxRetries = 5
		for attempt := 0; attempt < maxRetries; attempt++ {
			// Give brokers time to stabilize
			time.Sleep(time.Duration(math.Pow(2, float64(attempt))) * time.Second)

			conn, err := kafka.Dial("tcp", brokers[0])
			if err != nil {
				if attempt == maxRetries-1 {
					logger.Warn("Could not connect to Kafka broker for topic creation after %d attempts: %v", maxRetries, err)
				}
				continue
			}

			ok := 0
			for _, topic := range topics {
				err := conn.CreateTopics(kafka.TopicConfig{
					Topic:             topic,
					NumPartitions:     1,
					ReplicationFactor: 1,
				})
				if err == nil || strings.Contains(err.Error(), "already exists") {
					ok++
				}
			}
			conn.Close()

			if ok == len(topics) {
				logger.Info("Kafka topics ready: %v", topics)
				return
			}
		}
	}()
}
