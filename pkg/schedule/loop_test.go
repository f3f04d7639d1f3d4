package schedule_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/sweetwater/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_SerializesWork(t *testing.T) {
	loop := schedule.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, loop.Post(func() { order = append(order, i) }))
	}
	loop.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain")
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.False(t, loop.Post(func() {}), "post after stop must be rejected")
}

func TestLoop_AfterFuncAndCancel(t *testing.T) {
	loop := schedule.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	var fired, cancelled atomic.Int32
	stop := loop.AfterFunc(5*time.Millisecond, func() { cancelled.Add(1) })
	stop()
	loop.AfterFunc(5*time.Millisecond, func() { fired.Add(1) })

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, cancelled.Load())
}

func TestLoop_Stop(t *testing.T) {
	loop := schedule.NewLoop()
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(context.Background()) }()

	loop.Stop()
	loop.Stop()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	<-loop.Done()
}
