package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/loanflow/loanflow/pkg/kafka"
	"github.com/loanflow/loanflow/pkg/testutil"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/event"
)

func TestEventPublisher_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers := testutil.StartKafka(t)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{Brokers: brokers, ClientID: "loan-service-test"})
	require.NoError(t, err)
	defer producer.Close()

	pub := NewEventPublisher(producer, TopicLoanEvents, discard)
	evt := event.NewKycVerified("CUST005", "VERIFIED", 0, time.Now())

	// The first write may race topic auto-creation.
	require.Eventually(t, func() bool {
		return pub.Publish(ctx, evt) == nil
	}, time.Minute, time.Second)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   brokers,
		Topic:     TopicLoanEvents,
		Partition: 0,
		MaxWait:   500 * time.Millisecond,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CUST005", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.TypeKycVerified, headers["event_type"])
	assert.Equal(t, evt.EventID(), headers["event_id"])
}
