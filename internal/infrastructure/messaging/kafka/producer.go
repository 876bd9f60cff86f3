package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/OLVCORE/smartimport/internal/config"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

var (
	ErrProducerClosed = errors.New(errors.ErrCodeInternal, "producer closed")
	ErrPublishFailed  = errors.New(errors.ErrCodeSimulationEventFailed, "publish failed")
)

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes enveloped events.  Safe for concurrent use.
type Producer struct {
	writer      WriterInterface
	topicPrefix string
	logger      logging.Logger
	closed      atomic.Bool

	published atomic.Int64
	failed    atomic.Int64
}

// NewProducer creates a Producer over the configured brokers.
func NewProducer(cfg *config.KafkaConfig, logger logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "kafka brokers are required")
	}
	retries := cfg.ProducerRetries
	if retries == 0 {
		retries = 3
	}
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = 100 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  retries + 1,
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
	}

	return &Producer{
		writer:      writer,
		topicPrefix: cfg.TopicPrefix,
		logger:      logger.Named("kafka-producer"),
	}, nil
}

// NewProducerWithWriter injects a writer; used by tests.
func NewProducerWithWriter(writer WriterInterface, topicPrefix string, logger logging.Logger) *Producer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Producer{writer: writer, topicPrefix: topicPrefix, logger: logger.Named("kafka-producer")}
}

// Publish wraps payload in an envelope and writes it to topic, keyed for
// per-entity ordering.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	envelope, err := NewEnvelope(topic, payload)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event envelope")
	}

	msg := kafka.Message{
		Topic: p.fullTopic(topic),
		Key:   []byte(key),
		Value: value,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.failed.Add(1)
		p.logger.Error("event publish failed",
			logging.String("topic", msg.Topic),
			logging.String("key", key),
			logging.Err(err),
		)
		return ErrPublishFailed.WithCause(err)
	}

	p.published.Add(1)
	p.logger.Debug("event published",
		logging.String("topic", msg.Topic),
		logging.String("key", key),
	)
	return nil
}

// Published returns the count of successfully written events.
func (p *Producer) Published() int64 { return p.published.Load() }

// Failed returns the count of failed writes.
func (p *Producer) Failed() int64 { return p.failed.Load() }

// Close flushes and shuts the writer down.  Idempotent.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}

func (p *Producer) fullTopic(topic string) string {
	if p.topicPrefix == "" {
		return topic
	}
	return p.topicPrefix + "." + topic
}

//Personal.AI order the ending
