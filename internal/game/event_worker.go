package game

import (
	"context"
	"log"
	"time"
)

// EventQueueSize is the buffer between the runner and the event worker.
const EventQueueSize = 256

const publishTimeout = 2 * time.Second

// StartEventWorker starts a background worker that hands table events to pub.
// With a nil publisher events are only logged.
func StartEventWorker(ctx context.Context, pub Publisher, events <-chan Event) {
	if pub == nil {
		log.Println("[EVENTS] No publisher configured; events will only be logged")
	}

	log.Println("[EVENTS] Event worker started")
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("[EVENTS] Event worker stopping")
				return
			case e := <-events:
				if pub == nil {
					log.Printf("[EVENTS] %s tick=%d", e.Type, e.Tick)
					continue
				}
				pctx, cancel := context.WithTimeout(ctx, publishTimeout)
				if err := pub.Publish(pctx, e); err != nil {
					log.Printf("[EVENTS] publish %s failed: %v", e.Type, err)
				}
				cancel()
			}
		}
	}()
}
