package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clipedit/clipedit/playback"
	"github.com/redis/go-redis/v9"
)

// Publisher fans session snapshots out to other services.
type Publisher interface {
	Publish(ctx context.Context, session string, snapshot playback.Snapshot) error
	Close() error
}

// SnapshotEvent is the published document.
type SnapshotEvent struct {
	Session  string            `json:"session"`
	Snapshot playback.Snapshot `json:"snapshot"`
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher connects to the redis instance at rawURL.
func NewRedisPublisher(rawURL, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &RedisPublisher{
		rdb:     redis.NewClient(opts),
		channel: channel,
	}, nil
}

// Ping checks the connection.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *RedisPublisher) Publish(ctx context.Context, session string, snapshot playback.Snapshot) error {
	data, err := json.Marshal(SnapshotEvent{Session: session, Snapshot: snapshot})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, data).Err()
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, playback.Snapshot) error { return nil }
func (nopPublisher) Close() error                                             { return nil }
