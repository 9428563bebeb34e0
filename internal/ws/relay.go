package ws

import (
	"context"
	"log"

	goredis "github.com/redis/go-redis/v9"

	tableredis "github.com/playmatatu/snooker/internal/redis"
)

// StartEventRelay subscribes to published table events and forwards them to
// every connected client.
func StartEventRelay(ctx context.Context, rdb *goredis.Client, h *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; event relay not started")
		return
	}
	tableredis.SubscribeEvents(ctx, rdb, h.BroadcastEvent)
}
