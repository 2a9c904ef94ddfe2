package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"logistics-route-service/internal/platform/obs"
	"logistics-route-service/internal/ports"
)

// RedisBroker carries events over Redis Pub/Sub so every replica sees them.
type RedisBroker struct {
	rdb *redis.Client

	mu   sync.Mutex
	subs map[chan ports.Event]*redis.PubSub
}

func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb, subs: map[chan ports.Event]*redis.PubSub{}}
}

func channelName(topic string) string { return "events:" + topic }

func (b *RedisBroker) Subscribe(topic string) chan ports.Event {
	ch := make(chan ports.Event, 16)
	ctx := context.Background()

	ps := b.rdb.Subscribe(ctx, channelName(topic))
	// Wait for the subscription confirmation so no publish is missed.
	if _, err := ps.Receive(ctx); err != nil {
		log.Printf("op=events.redis.subscribe topic=%s err=%v", topic, err)
	}

	b.mu.Lock()
	b.subs[ch] = ps
	b.mu.Unlock()

	go func() {
		for msg := range ps.Channel() {
			var evt ports.Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue
			}
			b.mu.Lock()
			if _, live := b.subs[ch]; live {
				select {
				case ch <- evt:
				default:
				}
			}
			b.mu.Unlock()
		}
	}()
	return ch
}

func (b *RedisBroker) Unsubscribe(topic string, ch chan ports.Event) {
	b.mu.Lock()
	ps, ok := b.subs[ch]
	delete(b.subs, ch)
	if ok {
		close(ch)
	}
	b.mu.Unlock()

	if ok {
		_ = ps.Close()
	}
}

func (b *RedisBroker) Publish(ctx context.Context, evt ports.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("req_id=%s op=events.redis.publish type=%s err=%v", obs.RequestID(ctx), evt.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := b.rdb.Publish(ctx, channelName(evt.Topic), data).Err(); err != nil {
		log.Printf("req_id=%s op=events.redis.publish type=%s err=%v", obs.RequestID(ctx), evt.Type, err)
	}
}
