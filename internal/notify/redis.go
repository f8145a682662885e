package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// wireEvent is the Redis encoding of an Event. Payload stays raw so the
// relay forwards it untouched.
type wireEvent struct {
	Name    string          `json:"name"`
	Room    string          `json:"room,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

func encodeEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func decodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Event{}, err
	}
	return Event{Name: w.Name, Room: w.Room, Payload: w.Payload}, nil
}

// RedisPublisher publishes events on a Redis channel so every instance's
// Relay can deliver them to its own websocket clients.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

// Relay subscribes to the Redis channel and forwards events to a local sink.
type Relay struct {
	client  *redis.Client
	channel string
	target  Publisher
	log     *zap.Logger
}

func NewRelay(client *redis.Client, channel string, target Publisher, log *zap.Logger) *Relay {
	return &Relay{client: client, channel: channel, target: target, log: log}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.log.Info("redis relay subscribed", zap.String("channel", r.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.deliver(ctx, []byte(msg.Payload))
		}
	}
}

func (r *Relay) deliver(ctx context.Context, data []byte) {
	ev, err := decodeEvent(data)
	if err != nil {
		r.log.Warn("dropping malformed relay message", zap.Error(err))
		return
	}
	if err := r.target.Publish(ctx, ev); err != nil {
		r.log.Warn("relay publish failed", zap.String("event", ev.Name), zap.Error(err))
	}
}
