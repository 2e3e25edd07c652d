package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"clipflow/internal/config"
	"clipflow/internal/logging"
)

// ErrEmptyTask is returned when a publish or handler receives a blank video name.
var ErrEmptyTask = errors.New("task payload must not be empty")

// Handler processes a single task. Returning an error marks the task failed;
// the subscription loop logs it and moves on.
type Handler func(ctx context.Context, videoName string) error

// Bus is a thin adapter over the Redis fan-out channel. Every subscription
// receives every published task independently, so each worker role sees each
// video exactly once per delivery.
type Bus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Bus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Broker.Addr,
		Password: cfg.Broker.Password,
		DB:       cfg.Broker.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("broker ping: %w", err)
	}

	return &Bus{
		client:  client,
		channel: cfg.Broker.Channel,
		logger:  logging.NewComponentLogger(logger, "task-bus"),
	}, nil
}

// Close releases the broker connection.
func (b *Bus) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

// Channel returns the fan-out channel name.
func (b *Bus) Channel() string {
	return b.channel
}

// Publish broadcasts the video name as the full task payload. Delivery is
// at-most-once; there is no durability across broker restarts.
func (b *Bus) Publish(ctx context.Context, videoName string) error {
	videoName = strings.TrimSpace(videoName)
	if videoName == "" {
		return ErrEmptyTask
	}
	if err := b.client.Publish(ctx, b.channel, videoName).Err(); err != nil {
		return fmt.Errorf("publish task: %w", err)
	}
	b.logger.Debug("task published", logging.String(logging.FieldVideo, videoName))
	return nil
}

// Subscribe opens a dedicated subscription for the given consumer group and
// invokes handler for every received task until the context ends. Handler
// errors are logged and swallowed; a failed task never terminates the loop.
func (b *Bus) Subscribe(ctx context.Context, group string, handler Handler) error {
	group = strings.TrimSpace(group)
	if group == "" {
		return errors.New("subscribe: group id must not be empty")
	}
	if handler == nil {
		return errors.New("subscribe: handler must not be nil")
	}

	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Force the subscription onto the wire before reporting readiness.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", group, err)
	}

	logger := b.logger.With(logging.String("group", group))
	logger.Info("subscribed to task channel", logging.String("channel", b.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return errors.New("task subscription closed")
			}
			videoName := strings.TrimSpace(msg.Payload)
			if videoName == "" {
				logger.Warn("discarding empty task payload")
				continue
			}
			if err := handler(ctx, videoName); err != nil {
				logger.Error("task failed", logging.String(logging.FieldVideo, videoName), logging.Error(err))
			}
		}
	}
}
