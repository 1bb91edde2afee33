// Package events publishes production write events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/noah-isme/cycle-count-api/pkg/jobs"
)

// HeaderEventType carries the job type on every message.
const HeaderEventType = "event-type"

var errNilWriter = errors.New("publisher requires a writer")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config selects the brokers and topic.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher writes queued jobs to a Kafka topic.
type Publisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewKafkaPublisher builds a publisher over a synchronous kafka.Writer.
func NewKafkaPublisher(cfg Config, logger *zap.Logger) (*Publisher, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("events topic must not be empty")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  false,
	}
	return newPublisher(writer, cfg, logger)
}

func newPublisher(writer messageWriter, cfg Config, logger *zap.Logger) (*Publisher, error) {
	if writer == nil {
		return nil, errNilWriter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{
		writer:  writer,
		topic:   cfg.Topic,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "events_publisher")),
	}, nil
}

// Handle is a jobs.Handler: it encodes the job payload as JSON and writes one message.
func (p *Publisher) Handle(ctx context.Context, job jobs.Job) error {
	value, err := json.Marshal(job.Payload)
	if err != nil {
		// Retrying cannot fix an unencodable payload.
		p.logger.Error("drop unencodable event", zap.String("job_id", job.ID), zap.Error(err))
		return nil
	}
	msg := kafka.Message{
		Key:   []byte(job.Key),
		Value: value,
		Time:  job.Enqueued,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(job.Type)},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", job.Type, p.topic, err)
	}
	p.logger.Debug("event published", zap.String("job_id", job.ID), zap.String("type", job.Type))
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
