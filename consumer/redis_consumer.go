// Package consumer triggers pipeline runs from a Redis Stream.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/config"
)

// readErrorPause is how long the loop waits after a failed XREADGROUP.
const readErrorPause = time.Second

// Config holds consumer configuration.
type Config struct {
	RedisURL     string
	GroupName    string
	ConsumerName string
	StreamKey    string
	BatchSize    int64
	BlockTimeout time.Duration
	Enabled      bool
}

// ConfigFrom maps the service's Redis settings onto a consumer config.
func ConfigFrom(cfg config.RedisConfig) Config {
	return Config{
		RedisURL:     cfg.URL,
		GroupName:    cfg.GroupName,
		ConsumerName: cfg.ConsumerName,
		StreamKey:    cfg.StreamKey,
		BatchSize:    cfg.BatchSize,
		BlockTimeout: cfg.BlockTimeout,
		Enabled:      cfg.Enabled,
	}
}

// Event is one stream entry decoded into its envelope fields.
type Event struct {
	MessageID string
	EventID   string
	EventType string
	Source    string
	CreatedAt time.Time
	Metadata  map[string]string
	Payload   json.RawMessage
}

// EventHandler processes events from the stream.
type EventHandler interface {
	// HandleEvent processes a single event. A returned error leaves the
	// message pending for redelivery.
	HandleEvent(ctx context.Context, event Event) error
}

// Consumer reads trigger events as a member of a consumer group.
type Consumer struct {
	cfg     Config
	client  *redis.Client
	handler EventHandler
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumer creates a consumer. A disabled consumer never dials Redis.
func NewConsumer(cfg Config, handler EventHandler, logger *slog.Logger) (*Consumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Consumer{cfg: cfg, handler: handler, logger: logger}
	if !cfg.Enabled {
		return c, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	c.client = redis.NewClient(opts)
	return c, nil
}

// Start joins the consumer group and reads in the background until Stop
// is called or ctx ends.
func (c *Consumer) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.logger.Info("redis trigger consumer disabled")
		return nil
	}

	if err := c.joinGroup(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.logger.Info("redis trigger consumer started",
		"stream", c.cfg.StreamKey,
		"group", c.cfg.GroupName,
		"consumer", c.cfg.ConsumerName,
	)

	go func() {
		defer close(c.done)
		c.run(runCtx)
	}()
	return nil
}

// Stop ends the read loop, lets the message in hand finish, then closes the client.
func (c *Consumer) Stop() {
	c.mu.Lock()
	cancel, done, client := c.cancel, c.done, c.client
	c.cancel, c.client = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if client != nil {
		if err := client.Close(); err != nil {
			c.logger.Warn("closing redis client", "error", err)
		}
	}
}

func (c *Consumer) joinGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.StreamKey, c.cfg.GroupName, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) run(ctx context.Context) {
	for ctx.Err() == nil {
		err := c.poll(ctx)
		if err == nil {
			continue
		}
		if ctx.Err() != nil || errors.Is(err, redis.ErrClosed) {
			break
		}

		c.logger.Error("reading trigger stream", "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(readErrorPause):
		}
	}
	c.logger.Info("redis trigger consumer stopped")
}

// poll reads one batch of new entries. redis.Nil means the block timed out.
func (c *Consumer) poll(ctx context.Context) error {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.GroupName,
		Consumer: c.cfg.ConsumerName,
		Streams:  []string{c.cfg.StreamKey, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.BlockTimeout,
	}).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return err
	}

	for _, stream := range streams {
		for _, msg := range stream.Messages {
			c.dispatch(ctx, msg)
		}
	}
	return nil
}

// dispatch hands one entry to the handler and acks it on success.
func (c *Consumer) dispatch(ctx context.Context, msg redis.XMessage) {
	event := parseEvent(msg)
	if err := c.handler.HandleEvent(ctx, event); err != nil {
		c.logger.Error("trigger left pending",
			"message_id", msg.ID,
			"event_type", event.EventType,
			"error", err,
		)
		return
	}

	if err := c.client.XAck(ctx, c.cfg.StreamKey, c.cfg.GroupName, msg.ID).Err(); err != nil {
		c.logger.Error("acking trigger", "message_id", msg.ID, "error", err)
	}
}

func parseEvent(msg redis.XMessage) Event {
	field := func(key string) string {
		s, _ := msg.Values[key].(string)
		return s
	}

	event := Event{
		MessageID: msg.ID,
		EventID:   field("event_id"),
		EventType: field("event_type"),
		Source:    field("source"),
		Metadata:  map[string]string{},
	}
	if ts := field("created_at"); ts != "" {
		event.CreatedAt, _ = time.Parse(time.RFC3339, ts)
	}
	if p := field("payload"); p != "" {
		event.Payload = json.RawMessage(p)
	}
	if m := field("metadata"); m != "" {
		_ = json.Unmarshal([]byte(m), &event.Metadata)
	}
	return event
}
