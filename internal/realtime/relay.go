package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisRelay carries board_updated frames between server processes over a
// redis pub/sub channel. Each process broadcasts to its own sessions first
// and then publishes; receivers skip frames they published themselves.
type RedisRelay struct {
	client  *redis.Client
	channel string
	node    string
}

type relayMessage struct {
	Node  string          `json:"node"`
	Frame json.RawMessage `json:"frame"`
}

func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	return &RedisRelay{client: client, channel: channel, node: ulid.Make().String()}
}

func (r *RedisRelay) Publish(ctx context.Context, frame []byte) error {
	payload, err := json.Marshal(relayMessage{Node: r.node, Frame: frame})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}

// Run delivers frames published by other processes to every local session
// until ctx is cancelled. A dropped subscription is re-established.
func (r *RedisRelay) Run(ctx context.Context, hub *Hub) {
	logger := log.WithFields(log.Fields{"channel": r.channel, "node": r.node})
	for {
		sub := r.client.Subscribe(ctx, r.channel)
		r.consume(ctx, sub.Channel(), hub, logger)
		sub.Close()

		if ctx.Err() != nil {
			return
		}
		logger.Error("pubsub channel closed, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (r *RedisRelay) consume(ctx context.Context, ch <-chan *redis.Message, hub *Hub, logger *log.Entry) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var m relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				logger.WithError(err).Warn("unable to parse relayed frame")
				continue
			}
			if m.Node == r.node {
				continue
			}
			hub.Broadcast(m.Frame, nil)
		}
	}
}
