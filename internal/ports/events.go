package ports

import (
	"context"
	"time"
)

const (
	TopicRoutes    = "routes"
	TopicInventory = "inventory"
)

type Event struct {
	Type  string         `json:"type"`
	Topic string         `json:"topic"`
	Data  map[string]any `json:"data,omitempty"`
	At    time.Time      `json:"at"`
}

// Port: fire-and-forget event delivery. Publishing never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event)
}

// EventBroker lets stream consumers subscribe to a topic.
type EventBroker interface {
	EventPublisher
	Subscribe(topic string) chan Event
	Unsubscribe(topic string, ch chan Event)
}
