package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// StartKafka runs a single-node KRaft broker and returns its bootstrap
// addresses. The container is terminated through t.Cleanup. Skipped under
// -short.
func StartKafka(t *testing.T) []string {
	t.Helper()
	if testing.Short() {
		t.Skip("kafka container skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("loanflow-test"))
	if ctr != nil {
		t.Cleanup(func() { terminate(t, "kafka", ctr) })
	}
	if err != nil {
		t.Fatalf("start kafka: %v", err)
	}

	brokers, err := ctr.Brokers(ctx)
	if err != nil {
		t.Fatalf("kafka brokers: %v", err)
	}
	return brokers
}
