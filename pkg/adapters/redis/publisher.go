package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/runner"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every channel and key.
const DefaultPrefix = "superdense:"

// DefaultQueueSize bounds the events waiting to be mirrored by Observer.
const DefaultQueueSize = 256

// Publisher implements ports.EventPublisher using Redis Pub/Sub.
// It also keeps the latest state of each topic under "<prefix>state:<topic>"
// so late subscribers can catch up.
type Publisher struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger

	queueSize int
	queue     chan mirrorJob
	done      chan struct{}
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// mirrorJob is one queued publish. A job without an event is a flush marker.
type mirrorJob struct {
	topic   string
	event   *domain.Event
	flushed chan struct{}
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Option configures the Publisher.
type Option func(*Publisher)

// WithPrefix sets a custom key prefix (default "superdense:").
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithTTL sets the expiration of the latest-state keys. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// WithTimeout bounds each publish issued by an Observer.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithQueueSize sets how many events Observer buffers before dropping.
func WithQueueSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithLogger configures the logger used for asynchronous publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New connects to a Redis server.
func New(addr, password string, db int, opts ...Option) *Publisher {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:    client,
		prefix:    DefaultPrefix,
		timeout:   2 * time.Second,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		queueSize: DefaultQueueSize,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan mirrorJob, p.queueSize)
	go p.mirror()
	return p
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close mirrors the events still queued, then releases the underlying client.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
		<-p.done
	})
	return p.client.Close()
}

// Flush blocks until every event queued before the call has been mirrored.
func (p *Publisher) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil
	}
	select {
	case p.queue <- mirrorJob{flushed: flushed}:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mirror publishes queued events in order on a single goroutine.
func (p *Publisher) mirror() {
	defer close(p.done)
	for job := range p.queue {
		if job.flushed != nil {
			close(job.flushed)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.Publish(ctx, job.topic, job.event); err != nil {
			p.logger.Warn("failed to mirror event", "topic", job.topic, "type", job.event.Type, "err", err)
		}
		cancel()
	}
}

// Channel returns the Pub/Sub channel for topic.
func (p *Publisher) Channel(topic string) string {
	return p.prefix + topic
}

func (p *Publisher) stateKey(topic string) string {
	return p.prefix + "state:" + topic
}

// Publish stores the event's state and broadcasts the event.
func (p *Publisher) Publish(ctx context.Context, topic string, event *domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := p.client.TxPipeline()
	if event.State != nil {
		state, err := json.Marshal(event.State)
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}
		pipe.Set(ctx, p.stateKey(topic), state, p.ttl)
	}
	pipe.Publish(ctx, p.Channel(topic), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// LastState returns the most recent state published on topic.
func (p *Publisher) LastState(ctx context.Context, topic string) (*domain.RunState, error) {
	data, err := p.client.Get(ctx, p.stateKey(topic)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("last state %q: %w", topic, domain.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var state domain.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

// Observer returns a runner observer that mirrors every transition to topic.
// Events are queued and published in order by a background goroutine, so a slow
// or unreachable Redis never delays the runner. Events are dropped when the
// queue is full or the publisher is closed.
func (p *Publisher) Observer(topic string) runner.Observer {
	return func(evt *domain.Event) {
		if evt == nil {
			return
		}
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.closed {
			return
		}
		select {
		case p.queue <- mirrorJob{topic: topic, event: evt}:
		default:
			p.logger.Warn("mirror queue full, event dropped", "topic", topic, "type", evt.Type)
		}
	}
}

// Subscribe streams events published on topic until ctx is done.
func (p *Publisher) Subscribe(ctx context.Context, topic string) (<-chan *domain.Event, error) {
	sub := p.client.Subscribe(ctx, p.Channel(topic))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	out := make(chan *domain.Event)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt domain.Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					p.logger.Warn("dropping malformed event", "channel", msg.Channel, "err", err)
					continue
				}
				select {
				case out <- &evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
