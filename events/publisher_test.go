package events

import (
	"context"
	"os"
	"testing"
	"time"

	"homechef-api/logger"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), SubjectOrderCreated, map[string]string{"orderId": "o1"}))
	p.Close()
}

func TestNatsPublisher_UnreachableServer(t *testing.T) {
	_, err := NewNatsPublisher("nats://127.0.0.1:1", logger.Discard())
	assert.Error(t, err)
}

// Runs only against a live server, e.g. NATS_URL=nats://localhost:4222
func TestNatsPublisher_Publish(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	msgs := make(chan *nats.Msg, 1)
	s, err := sub.ChanSubscribe(SubjectPaymentSucceeded, msgs)
	require.NoError(t, err)
	defer func() { _ = s.Unsubscribe() }()
	require.NoError(t, sub.Flush())

	p, err := NewNatsPublisher(url, logger.Discard())
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Publish(context.Background(), SubjectPaymentSucceeded, map[string]string{"orderId": "o1"}))

	select {
	case msg := <-msgs:
		assert.JSONEq(t, `{"orderId":"o1"}`, string(msg.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
