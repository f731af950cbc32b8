package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/retry"
)

const publishTimeout = 5 * time.Second

// NATSPublisher publishes run events to a JetStream-enabled NATS broker.
// Transient publish failures are retried per the backoff policy.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	policy  retry.Policy
}

// NewNATSPublisher connects to the configured broker.
func NewNATSPublisher(cfg config.NATSConfig) (*NATSPublisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("NATS publishing is disabled")
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	slog.Info("NATS publisher initialized", "url", cfg.URL, "subject", cfg.Subject)
	return &NATSPublisher{conn: conn, js: js, subject: cfg.Subject, policy: retry.DefaultPolicy()}, nil
}

// Publish delivers a run event, bounded by an internal timeout per attempt.
func (p *NATSPublisher) Publish(ctx context.Context, event RunEvent) error {
	data, err := Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.policy.Do(ctx, func() error {
		publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		_, err := p.js.Publish(publishCtx, p.subject, data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("Published run event", "run_id", event.RunID, "type", event.Type, "check", event.Check)
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
