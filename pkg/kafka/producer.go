package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"sort"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer wraps kafka-go writers for publishing messages, one writer per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]*kafkago.Writer
	brokers   []string
	transport *kafkago.Transport
}

// NewProducer creates a new Producer with the given configuration. It fails
// only when the SASL mechanism cannot be constructed.
func NewProducer(cfg Config) (*Producer, error) {
	transport := &kafkago.Transport{ClientID: cfg.ClientID}
	if cfg.TLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.SASLEnabled {
		mech, err := resolveSASL(cfg)
		if err != nil {
			return nil, err
		}
		transport.SASL = mech
	}

	return &Producer{
		writers:   make(map[string]*kafkago.Writer),
		brokers:   cfg.Brokers,
		transport: transport,
	}, nil
}

// Publish sends messages to the specified topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.getOrCreateWriter(topic)

	if err := w.WriteMessages(ctx, toKafkaMessages(messages)...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

// getOrCreateWriter lazily creates a writer for a topic.
func (p *Producer) getOrCreateWriter(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		Transport:              p.transport,
	}
	p.writers[topic] = w
	return w
}

// toKafkaMessages converts messages, emitting headers in sorted key order so
// the wire representation is stable.
func toKafkaMessages(messages []Message) []kafkago.Message {
	out := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{Key: msg.Key, Value: msg.Value}

		keys := make([]string, 0, len(msg.Headers))
		for k := range msg.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(msg.Headers[k])})
		}
		out = append(out, km)
	}
	return out
}

func resolveSASL(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-256: %w", err)
		}
		return m, nil
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-512: %w", err)
		}
		return m, nil
	case "PLAIN", "":
		return plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}, nil
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}
