package redis_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/sweetwater/internal/adapters/redis"
	"github.com/aretw0/sweetwater/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Publisher) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	pub := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = pub.Close() })
	return mr, pub
}

func TestPublisher_StoresLatest(t *testing.T) {
	mr, pub := setup(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, pub.Present(ctx, domain.Snapshot{RunID: "run-1", Stage: domain.StageMarketing, Score: 10}))
	require.NoError(t, pub.Present(ctx, domain.Snapshot{RunID: "run-1", Stage: domain.StageSales, Score: 40}))

	var snap domain.Snapshot
	require.Eventually(t, func() bool {
		got, err := pub.Load(ctx, "run-1")
		snap = got
		return err == nil && got.Score == 40
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.StageSales, snap.Stage)

	assert.True(t, mr.Exists("sweetwater:snapshot:run-1"))
	assert.Equal(t, time.Minute, mr.TTL("sweetwater:snapshot:run-1"))

	mr.FastForward(2 * time.Minute)
	_, err := pub.Load(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestPublisher_NotFound(t *testing.T) {
	_, pub := setup(t)
	_, err := pub.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestPublisher_Subscribe(t *testing.T) {
	_, pub := setup(t, redis.WithPrefix("test:"))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, "test:snapshots", pub.Channel())

	snaps, err := pub.Subscribe(ctx)
	require.NoError(t, err)

	board := &domain.Board{Width: 20, Height: 12, Occupant: []domain.Cell{{Col: 10, Row: 6}}, Running: true}
	require.NoError(t, pub.Present(ctx, domain.Snapshot{RunID: "run-2", Stage: domain.StageSales, Board: board}))

	select {
	case got := <-snaps:
		assert.Equal(t, "run-2", got.RunID)
		require.NotNil(t, got.Board)
		assert.Equal(t, board.Occupant, got.Board.Occupant)
	case <-ctx.Done():
		t.Fatal("no snapshot received")
	}

	cancel()
	for range snaps {
	}
}

func TestPublisher_ConnectionError(t *testing.T) {
	mr, pub := setup(t)
	mr.Close()

	assert.NoError(t, pub.Present(context.Background(), domain.Snapshot{RunID: "x"}))

	_, err := pub.Load(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRunNotFound)
}

func TestPublisher_UnresponsiveServerDoesNotBlock(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	// Accept connections and never answer.
	go func() {
		var conns []net.Conn
		defer func() {
			for _, c := range conns {
				_ = c.Close()
			}
		}()
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()

	pub := redis.New(ln.Addr().String(), "", 0,
		redis.WithBuffer(2),
		redis.WithPublishTimeout(200*time.Millisecond),
	)

	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, pub.Present(context.Background(), domain.Snapshot{RunID: "r", Score: i}))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	closed := make(chan error, 1)
	go func() { closed <- pub.Close() }()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	assert.NoError(t, pub.Present(context.Background(), domain.Snapshot{RunID: "r"}))
}
