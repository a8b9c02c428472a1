package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Channel is the pub/sub channel shared by every API instance.
const Channel = "clinic-chat:events"

const publishTimeout = 2 * time.Second

type envelope struct {
	ThreadID uuid.UUID       `json:"thread_id"`
	Payload  json.RawMessage `json:"payload"`
}

// RedisRelay publishes chat events to Redis so that every instance can
// deliver them to its own local rooms.
type RedisRelay struct {
	client *redis.Client
	local  *Rooms
	log    zerolog.Logger
}

func NewRedisRelay(url string, local *Rooms, log zerolog.Logger) (*RedisRelay, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisRelay{client: redis.NewClient(opts), local: local, log: log}, nil
}

func (r *RedisRelay) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Broadcast publishes the payload. When Redis is unreachable the event is
// delivered to local rooms only.
func (r *RedisRelay) Broadcast(threadID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Warn().Err(err).Msg("realtime: marshal payload")
		return
	}

	msg, err := json.Marshal(envelope{ThreadID: threadID, Payload: data})
	if err != nil {
		r.log.Warn().Err(err).Msg("realtime: marshal envelope")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.client.Publish(ctx, Channel, msg).Err(); err != nil {
		r.log.Warn().Err(err).Str("thread_id", threadID.String()).Msg("realtime: redis publish failed, delivering locally")
		r.local.BroadcastRaw(threadID, data)
	}
}

// Run relays events from Redis into the local rooms until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", Channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.log.Warn().Err(err).Msg("realtime: bad relay message")
				continue
			}
			r.local.BroadcastRaw(env.ThreadID, env.Payload)
		}
	}
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
