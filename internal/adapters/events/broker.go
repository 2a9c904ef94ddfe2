package events

import (
	"context"
	"sync"

	"logistics-route-service/internal/ports"
)

// Broker fans events out to in-process subscribers keyed by topic.
// Slow subscribers miss events rather than block publishers.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan ports.Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: map[string]map[chan ports.Event]struct{}{}}
}

func (b *Broker) Subscribe(topic string) chan ports.Event {
	ch := make(chan ports.Event, 16)
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = map[chan ports.Event]struct{}{}
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(topic string, ch chan ports.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := b.subs[topic]
	if _, ok := m[ch]; !ok {
		return
	}
	delete(m, ch)
	if len(m) == 0 {
		delete(b.subs, topic)
	}
	close(ch)
}

func (b *Broker) Publish(ctx context.Context, evt ports.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[evt.Topic] {
		select {
		case ch <- evt:
		default:
		}
	}
}
