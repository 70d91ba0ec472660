package redis

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	backend "github.com/redis/go-redis/v9"

	"github.com/colintheshots/RxFsm/internal/logging"
	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/registry"
)

// DefaultPrefix namespaces the Redis channels the pump listens on.
const DefaultPrefix = "rxfsm:"

// Pump bridges Redis pub/sub into local event streams. Each event name
// maps to the channel "<prefix><event>"; the message payload is the
// target state path, and an empty payload marks an internal occurrence.
//
// Run consumes messages on a single goroutine, which serializes the
// occurrences it produces. Hosts with additional producers (e.g. the
// HTTP adapter) must share one lock across all of them via WithLock.
type Pump struct {
	client  *backend.Client
	streams *registry.Registry
	prefix  string
	lock    sync.Locker
	logger  *slog.Logger
}

// Option configures the Pump.
type Option func(*Pump)

// WithPrefix overrides the channel prefix (default "rxfsm:").
func WithPrefix(prefix string) Option {
	return func(p *Pump) {
		p.prefix = prefix
	}
}

// WithLock shares an external lock with other occurrence producers
// feeding the same machine.
func WithLock(lock sync.Locker) Option {
	return func(p *Pump) {
		if lock != nil {
			p.lock = lock
		}
	}
}

// WithLogger sets a structured logger for dispatch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pump) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPump creates a pump reading occurrences for the registry's streams
// from Redis.
func NewPump(client *backend.Client, streams *registry.Registry, opts ...Option) *Pump {
	p := &Pump{
		client:  client,
		streams: streams,
		prefix:  DefaultPrefix,
		lock:    &sync.Mutex{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run subscribes to the pump's channel pattern and dispatches messages
// until the context is cancelled or the subscription closes.
func (p *Pump) Run(ctx context.Context) error {
	sub := p.client.PSubscribe(ctx, p.prefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	p.logger.Info("redis pump started", "pattern", p.prefix+"*")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event := strings.TrimPrefix(msg.Channel, p.prefix)
			p.dispatch(event, msg.Payload)
		}
	}
}

func (p *Pump) dispatch(event, target string) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if err := p.streams.Emit(event, domain.NewOccurrence(target)); err != nil {
		p.logger.Error("redis occurrence dispatch failed",
			"event", event,
			"target", target,
			"err", err)
	}
}
