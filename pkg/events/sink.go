package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/devicekit/pkg/broadcast"
)

// Sink delivers events to an outside party.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

// BroadcastSink fans events out in-process. Each message is tagged with the
// session ID as its topic.
type BroadcastSink struct {
	b broadcast.Broadcaster[Event]
}

// NewBroadcastSink wraps b.
func NewBroadcastSink(b broadcast.Broadcaster[Event]) *BroadcastSink {
	return &BroadcastSink{b: b}
}

// Publish broadcasts e on its session topic.
func (s *BroadcastSink) Publish(ctx context.Context, e Event) error {
	return s.b.Broadcast(ctx, broadcast.Message[Event]{Topic: e.SessionID, Data: e})
}

// Publisher is the subset of the go-redis client RedisSink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisSink publishes JSON-encoded events on a per-session channel.
type RedisSink struct {
	client Publisher
	prefix string
}

// NewRedisSink creates a sink publishing on "<prefix>:<sessionID>".
func NewRedisSink(client Publisher, prefix string) *RedisSink {
	return &RedisSink{client: client, prefix: prefix}
}

// Channel returns the channel events of sessionID are published on.
func (s *RedisSink) Channel(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Publish encodes e and publishes it.
func (s *RedisSink) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrEncodeEvent, err)
	}
	if err := s.client.Publish(ctx, s.Channel(e.SessionID), payload).Err(); err != nil {
		return errors.Join(ErrPublish, err)
	}
	return nil
}
