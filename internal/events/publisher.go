package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher hands domain events to the message broker. Publishing is fire
// and forget: callers log failures, they never roll back on them.
type Publisher interface {
	Publish(ctx context.Context, key string, env Envelope) error
	Close() error
}

var ErrPublisherClosed = errors.New("event publisher closed")

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const writeTimeout = 10 * time.Second

// KafkaPublisher queues events in memory and writes them from a single
// goroutine so request handlers never block on the broker.
type KafkaPublisher struct {
	w       messageWriter
	inbox   chan kafka.Message
	done    chan struct{}
	dropped metrics.Counter

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	if buf <= 0 {
		buf = 256
	}
	return &KafkaPublisher{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start runs the writer loop until Close drains the queue.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		log := logger.L().With(zap.String("component", "kafka_publisher"))

		for m := range p.inbox {
			eventType := headerValue(m.Headers, "event_type")

			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := p.w.WriteMessages(ctx, m)
			cancel()

			if err != nil {
				metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
				log.Error("failed to write event",
					zap.String("event_type", eventType),
					zap.ByteString("key", m.Key),
					zap.Error(err),
				)
				continue
			}
			metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
		}

		if err := p.w.Close(); err != nil {
			log.Error("failed to close kafka writer", zap.Error(err))
		}
	}()
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.inbox <- msg:
		return nil
	default:
		p.dropped.Inc()
		metrics.EventsPublished.WithLabelValues(env.EventType, "dropped").Inc()
		logger.FromCtx(ctx).Warn("event queue full, dropping event",
			zap.String("event_type", env.EventType),
			zap.String("key", key),
		)
		return nil
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (p *KafkaPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Close stops accepting events, flushes the queue and waits for the writer
// loop to exit. Start must have been called.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	<-p.done
	return nil
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
