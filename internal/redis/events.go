package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/playmatatu/snooker/internal/game"
	"github.com/redis/go-redis/v9"
)

// EventsChannel is the pub/sub channel table events are published on.
const EventsChannel = "table_events"

// EventPublisher publishes table events as JSON on a Redis channel.
type EventPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewEventPublisher(rdb *redis.Client) *EventPublisher {
	return &EventPublisher{rdb: rdb, channel: EventsChannel}
}

// Publish implements game.Publisher.
func (p *EventPublisher) Publish(ctx context.Context, e game.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	n, err := p.rdb.Publish(ctx, p.channel, b).Result()
	if err != nil {
		return fmt.Errorf("publish %s event: %w", e.Type, err)
	}
	log.Printf("[EVENTS] published %s tick=%d subscribers=%d", e.Type, e.Tick, n)
	return nil
}

// SubscribeEvents decodes events from the channel and passes them to fn until
// ctx is cancelled.
func SubscribeEvents(ctx context.Context, rdb *redis.Client, fn func(game.Event)) {
	pubsub := rdb.Subscribe(ctx, EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[EVENTS] %s subscriber started", EventsChannel)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[EVENTS] %s subscriber stopping", EventsChannel)
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var e game.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					log.Printf("[EVENTS] invalid event payload: %v", err)
					continue
				}
				fn(e)
			}
		}
	}()
}
