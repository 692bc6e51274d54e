package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "loan-service",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Equal(t, "loan-service", p.transport.ClientID)
	assert.Nil(t, p.transport.TLS)
}

func TestNewProducer_SASL(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantErr   bool
	}{
		{name: "plain by default", mechanism: ""},
		{name: "plain", mechanism: "PLAIN"},
		{name: "scram 256", mechanism: "SCRAM-SHA-256"},
		{name: "scram 512", mechanism: "SCRAM-SHA-512"},
		{name: "unknown", mechanism: "GSSAPI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProducer(Config{
				Brokers:       []string{"kafka:9092"},
				SASLEnabled:   true,
				SASLMechanism: tt.mechanism,
				SASLUsername:  "user",
				SASLPassword:  "pass",
				TLS:           true,
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p.transport.SASL)
			assert.NotNil(t, p.transport.TLS)
		})
	}
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Brokers: []string{""}}.Enabled())
	assert.True(t, Config{Brokers: []string{"kafka:9092"}}.Enabled())
}

func TestToKafkaMessages_SortsHeaders(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:   []byte("CUST001"),
		Value: []byte(`{"decision":"APPROVE"}`),
		Headers: map[string]string{
			"event_type": "loan.underwriting.decided",
			"event_id":   "abc",
		},
	}})

	require.Len(t, msgs, 1)
	assert.Equal(t, "CUST001", string(msgs[0].Key))
	require.Len(t, msgs[0].Headers, 2)
	assert.Equal(t, "event_id", msgs[0].Headers[0].Key)
	assert.Equal(t, "event_type", msgs[0].Headers[1].Key)
}

func TestPublish_NoMessagesIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:1"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "loanflow.loan.events"))
	assert.Empty(t, p.writers)
}

func TestProducer_CloseWithoutWriters(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
