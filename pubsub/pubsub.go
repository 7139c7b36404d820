// Package pubsub mirrors Result Broadcaster fan-out onto Redis PUBLISH,
// so that operators running more than one API process can share a
// single live-match feed across instances.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pdarena.dev/service/broadcast"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/types"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "pdarena:match_resolution"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis mirror.
type Config struct {
	URL     string
	Channel string
	Timeout time.Duration
	Retries int
}

// Mirror republishes locally broadcast match resolutions to Redis.
type Mirror struct {
	config Config
	client *goredis.Client
	logger *logx.Logger
}

// New creates a Redis mirror. Returns an error if the URL is empty or
// invalid.
func New(cfg Config, logger *logx.Logger) (*Mirror, error) {
	if cfg.URL == "" {
		return nil, errors.New("pubsub: URL is required")
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pubsub: invalid URL: %w", err)
	}
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultRetries
	}
	return &Mirror{config: cfg, client: goredis.NewClient(opts), logger: logger}, nil
}

// Run subscribes to b and republishes every lite view until ctx is
// canceled or the subscription closes. Intended to run in its own
// goroutine, one per process, started alongside the worker.Pool.
func (m *Mirror) Run(ctx context.Context, b *broadcast.Broadcaster) {
	sub := b.Subscribe()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case view, ok := <-sub.C():
			if !ok {
				return
			}
			if err := m.publish(ctx, view); err != nil {
				m.logger.Warn("pubsub: publish failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// publish sends view as a JSON PUBLISH to the configured channel,
// retrying with exponential backoff. Publish failures are best-effort:
// the authoritative feed is the local Broadcaster, so a dropped mirror
// publish never blocks or fails a matchup.
func (m *Mirror) publish(ctx context.Context, view types.MatchResolutionLite) error {
	body, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("pubsub: marshal: %w", err)
	}

	attempts := 1 + m.config.Retries
	var lastErr error
	for i := range attempts {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		publishCtx, cancel := context.WithTimeout(ctx, m.config.Timeout)
		lastErr = m.client.Publish(publishCtx, m.config.Channel, body).Err()
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("pubsub: failed after %d attempts: %w", attempts, lastErr)
}

// Close releases the underlying Redis client.
func (m *Mirror) Close() error {
	return m.client.Close()
}
