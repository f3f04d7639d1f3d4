package memory

import (
	"context"
	"sync"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Broadcaster fans presented snapshots out to live watchers. A watcher that
// falls behind loses snapshots instead of blocking the event loop.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan domain.Snapshot]struct{}
	buffer int
}

// NewBroadcaster creates a broadcaster whose watchers buffer up to buffer snapshots.
func NewBroadcaster(buffer int) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[chan domain.Snapshot]struct{}),
		buffer: buffer,
	}
}

// Present delivers snap to every watcher with room for it.
func (b *Broadcaster) Present(ctx context.Context, snap domain.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- clone(snap):
		default:
		}
	}
	return nil
}

// Watch returns a channel of snapshots that is closed once ctx is done.
func (b *Broadcaster) Watch(ctx context.Context) (<-chan domain.Snapshot, error) {
	ch := make(chan domain.Snapshot, b.buffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// Watchers returns the number of live watchers.
func (b *Broadcaster) Watchers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
