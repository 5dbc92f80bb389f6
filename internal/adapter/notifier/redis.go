// Package notifier bridges the in-process lifecycle feed to the
// external notification layer over a redis channel. Fire-and-forget:
// delivery failures are logged, never propagated into the core.
package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lendcircle-backend/internal/event"
)

type Redis struct {
	rdb     *redis.Client
	channel string
}

func NewRedis(rdb *redis.Client, channel string) *Redis {
	return &Redis{rdb: rdb, channel: channel}
}

// Attach subscribes to every event on d; the returned func detaches.
func (n *Redis) Attach(d *event.Dispatcher) func() {
	return d.Subscribe(nil, n.publish)
}

func (n *Redis) publish(e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		log.Printf("notifier: marshal %s: %v", e.Kind, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
		log.Printf("notifier: publish %s: %v", e.Kind, err)
	}
}
