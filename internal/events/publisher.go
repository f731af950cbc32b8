// Package events publishes run lifecycle events to an optional NATS broker.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// RunEvent is the wire payload published for pipeline lifecycle transitions.
type RunEvent struct {
	RunID     string    `json:"run_id"`
	Type      string    `json:"type"`
	Check     string    `json:"check,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers run events to an external system.
type Publisher interface {
	Publish(ctx context.Context, event RunEvent) error
	Close()
}

// NoopPublisher drops all events (default when no broker is configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, RunEvent) error { return nil }
func (NoopPublisher) Close()                                  {}

// Marshal encodes an event for transport, stamping the timestamp when unset.
func Marshal(event RunEvent) ([]byte, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return json.Marshal(event)
}
