package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sweetwater/internal/logging"
	"github.com/aretw0/sweetwater/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Publisher implements ports.Presenter on Redis. Every snapshot is published as
// JSON on a pub/sub channel and kept as the latest snapshot of its run under a
// key that expires, so late observers can catch up.
//
// Present never waits on the network: snapshots are queued and written by a
// single worker, and dropped when the queue is full.
type Publisher struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	buffer  int
	logger  *slog.Logger

	queue chan domain.Snapshot
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

type Option func(*Publisher)

// WithTTL sets the expiration of the latest-snapshot keys.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// WithPrefix sets the prefix of keys and channels.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithPublishTimeout bounds each write to Redis.
func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithBuffer sets how many snapshots may wait for the worker.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

// WithLogger sets the logger used for failed or dropped publishes.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher connected to address. The client fails fast so a
// slow server only delays the worker.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:         address,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxRetries:   1,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client and starts its worker.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		prefix:  "sweetwater:",
		ttl:     10 * time.Minute,
		timeout: 2 * time.Second,
		buffer:  64,
		logger:  logging.NewNop(),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}
	if p.buffer < 1 {
		p.buffer = 1
	}
	p.queue = make(chan domain.Snapshot, p.buffer)

	p.wg.Add(1)
	go p.run()
	return p
}

// Channel is the pub/sub channel snapshots are published on.
func (p *Publisher) Channel() string {
	return p.prefix + "snapshots"
}

func (p *Publisher) key(runID string) string {
	return p.prefix + "snapshot:" + runID
}

// Present queues the snapshot for publishing. It does not block: when the
// queue is full the snapshot is dropped, and after Close it is ignored.
func (p *Publisher) Present(_ context.Context, snap domain.Snapshot) error {
	select {
	case <-p.done:
		return nil
	default:
	}

	select {
	case p.queue <- snap:
	default:
		p.logger.Debug("Dropping snapshot, redis publisher is behind", "run_id", snap.RunID)
	}
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case snap := <-p.queue:
			if err := p.publish(snap); err != nil {
				p.logger.Warn("Failed to publish snapshot", "run_id", snap.RunID, "err", err)
			}
		}
	}
}

// publish stores the snapshot as the latest of its run and announces it.
func (p *Publisher) publish(snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	pipe := p.client.Pipeline()
	pipe.Set(ctx, p.key(snap.RunID), data, p.ttl)
	pipe.Publish(ctx, p.Channel(), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

// Load retrieves the latest snapshot of a run.
func (p *Publisher) Load(ctx context.Context, runID string) (domain.Snapshot, error) {
	val, err := p.client.Get(ctx, p.key(runID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Snapshot{}, domain.ErrRunNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Subscribe streams published snapshots until ctx is done. Messages that fail
// to decode are dropped.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan domain.Snapshot, error) {
	sub := p.client.Subscribe(ctx, p.Channel())
	// Wait for the subscription confirmation so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan domain.Snapshot)
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
				var snap domain.Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close stops the worker and closes the redis client. Queued snapshots that
// were not yet written are discarded.
func (p *Publisher) Close() error {
	var err error
	p.once.Do(func() {
		close(p.done)
		p.wg.Wait()
		err = p.client.Close()
	})
	return err
}
