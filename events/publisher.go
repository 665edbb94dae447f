// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homechef-api/logger"

	"github.com/nats-io/nats.go"
)

const (
	SubjectOrderCreated       = "order.created"
	SubjectOrderStatusChanged = "order.status_changed"
	SubjectPaymentSucceeded   = "payment.succeeded"
	SubjectRequestApproved    = "request.approved"
	SubjectRequestRejected    = "request.rejected"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
	Close()
}

type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

func NewNatsPublisher(url string, log *logger.Logger) (*NatsPublisher, error) {
	log = log.WithComponent("events")
	nc, err := nats.Connect(url,
		nats.Name("Home Chef API"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Connected to NATS", "url", url)
	return &NatsPublisher{nc: nc, logger: log}, nil
}

// Publish sends payload as JSON and flushes once; there are no retries.
func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush %s: %w", subject, err)
	}
	return nil
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}

// Noop discards events when NATS is not configured
type Noop struct{}

func (Noop) Publish(ctx context.Context, subject string, payload interface{}) error {
	return nil
}

func (Noop) Close() {}
