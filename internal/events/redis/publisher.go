// Package redis publishes relay events to a capped Redis stream.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rishabhsai/RishBOT/internal/observability"
)

const (
	publishTimeout = 2 * time.Second
	defaultBuffer  = 1024
)

// StreamPublisher implements domain.EventPublisher on top of XADD.
// Events are queued and written by a background worker, so a slow or
// unreachable Redis never delays the request that produced them.
type StreamPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64

	mu     sync.RWMutex
	closed bool
	queue  chan *redis.XAddArgs
	done   chan struct{}
}

// NewStreamPublisher creates a publisher writing to cfg.Stream and starts its worker.
func NewStreamPublisher(client redis.Cmdable, cfg Config) (*StreamPublisher, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if cfg.Stream == "" {
		return nil, errors.New("stream name cannot be empty")
	}

	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	p := &StreamPublisher{
		client: client,
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
		queue:  make(chan *redis.XAddArgs, buffer),
		done:   make(chan struct{}),
	}
	go p.run()

	return p, nil
}

// NewClient creates a Redis client from config.
func NewClient(cfg Config) *redis.Client {
	//nolint:exhaustruct // redis options have many optional fields
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Publish queues the event for the worker. It never blocks: when the queue
// is full or the publisher is closed the event is dropped and logged.
func (p *StreamPublisher) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	args := p.args(ctx, eventType, data)

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}

	select {
	case p.queue <- args:
	default:
		observability.FromContext(ctx).Warn("event queue full, dropping event",
			observability.String("event", eventType),
			observability.String("stream", p.stream),
		)
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (p *StreamPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return nil
}

func (p *StreamPublisher) run() {
	defer close(p.done)

	for args := range p.queue {
		p.write(args)
	}
}

func (p *StreamPublisher) write(args *redis.XAddArgs) {
	ctx := context.Background()
	if values, ok := args.Values.(map[string]interface{}); ok {
		if requestID, ok := values["request_id"].(string); ok {
			ctx = observability.WithRequestID(ctx, requestID)
		}
	}

	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.XAdd(writeCtx, args).Err(); err != nil {
		observability.FromContext(ctx).Warn("failed to publish event",
			observability.String("stream", p.stream),
			observability.Error(err),
		)
	}
}

func (p *StreamPublisher) args(ctx context.Context, eventType string, data map[string]interface{}) *redis.XAddArgs {
	values := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		values[k] = fmt.Sprint(v)
	}
	values["type"] = eventType
	values["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if requestID := observability.GetRequestID(ctx); requestID != "" {
		values["request_id"] = requestID
	}

	//nolint:exhaustruct // only stream, trimming and values are set
	return &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: values,
	}
}
