package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/sweetwater/pkg/adapters/memory"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_FanOut(t *testing.T) {
	b := memory.NewBroadcaster(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Watch(ctx)
	require.NoError(t, err)
	second, err := b.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Present(ctx, domain.Snapshot{RunID: "r", Score: 7}))

	assert.Equal(t, 7, (<-first).Score)
	assert.Equal(t, 7, (<-second).Score)
}

func TestBroadcaster_SlowWatcherDropsSnapshots(t *testing.T) {
	b := memory.NewBroadcaster(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Watch(ctx)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, b.Present(ctx, domain.Snapshot{Score: i}))
	}

	assert.Equal(t, 1, (<-ch).Score)
	assert.Empty(t, ch)
}

func TestBroadcaster_CancelClosesWatcher(t *testing.T) {
	b := memory.NewBroadcaster(1)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("watcher was not closed")
	}
	assert.Eventually(t, func() bool { return b.Watchers() == 0 }, time.Second, 10*time.Millisecond)
	require.NoError(t, b.Present(context.Background(), domain.Snapshot{}))
}
