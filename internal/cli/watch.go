package cli

import (
	"context"
	"io"

	"github.com/aretw0/sweetwater/internal/adapters/redis"
	"github.com/aretw0/sweetwater/internal/presentation/tui"
)

// Watch mirrors a running arcade by drawing the snapshots it publishes on Redis.
func Watch(parent context.Context, w io.Writer, addr string) error {
	sc := NewSignalContext(parent)
	defer sc.Cancel()

	pub := redis.New(addr, "", 0)
	defer pub.Close()

	snaps, err := pub.Subscribe(sc.Context)
	if err != nil {
		return err
	}

	tui.PrintBanner(w)
	printSystemMessage(w, "Watching %s on %s", pub.Channel(), addr)

	presenter := tui.NewPresenter(w)
	for snap := range snaps {
		if err := presenter.Present(sc.Context, snap); err != nil {
			return err
		}
	}
	return handleExecutionError(sc.Context.Err())
}
