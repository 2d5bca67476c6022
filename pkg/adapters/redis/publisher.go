package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel app events are published on.
const DefaultChannel = "hxnotify:events"

// Publisher implements ports.EventSink over Redis pub/sub.
// Events are fire-and-forget: nothing is retained for late subscribers.
type Publisher struct {
	client  *backend.Client
	channel string
	logger  *slog.Logger
}

var _ ports.EventSink = (*Publisher)(nil)

type Option func(*Publisher)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		p.channel = channel
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher connected to the given address.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the channel events are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Emit publishes the event as JSON.
func (p *Publisher) Emit(ctx context.Context, evt domain.AppEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event to redis: %w", err)
	}
	p.logger.DebugContext(ctx, "event published", "event", evt.Name, "receivers", receivers)
	return nil
}

// Subscribe listens on the channel until ctx is done or the returned func is called.
// Messages that do not decode as events are logged and skipped.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan domain.AppEvent, func() error, error) {
	ps := p.client.Subscribe(ctx, p.channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	out := make(chan domain.AppEvent, 16)
	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt domain.AppEvent
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					p.logger.Warn("skipping undecodable event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, ps.Close, nil
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
