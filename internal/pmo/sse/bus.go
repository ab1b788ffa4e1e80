package sse

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const changeChannel = "pmo:changes"

type changeMessage struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

// Bus bridges change events through redis pub/sub so a mutation on one
// instance reaches the SSE clients of every instance. Without redis the
// hub is used directly and the deployment is single-instance.
type Bus struct {
	rdb *redis.Client
	hub *Hub
	log *zap.Logger
}

func NewBus(rdb *redis.Client, hub *Hub, log *zap.Logger) *Bus {
	return &Bus{rdb: rdb, hub: hub, log: log}
}

// Publish pushes a change event onto the redis channel. Publish failures
// are logged and dropped; notifications are best effort.
func (b *Bus) Publish(table, action, id string) {
	payload, err := json.Marshal(changeMessage{Table: table, Action: action, ID: id})
	if err != nil {
		b.log.Error("marshal change message", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(context.Background(), changeChannel, payload).Err(); err != nil {
		b.log.Warn("publish change message", zap.Error(err))
	}
}

// Run subscribes to the change channel and rebroadcasts every message to
// the local hub until the context is cancelled.
func (b *Bus) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, changeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var change changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				b.log.Warn("decode change message", zap.Error(err))
				continue
			}
			b.hub.PublishChange(change.Table, change.Action, change.ID)
		}
	}
}
