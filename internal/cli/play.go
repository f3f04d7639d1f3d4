package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/sweetwater"
	inspector "github.com/aretw0/sweetwater/internal/adapters/http"
	"github.com/aretw0/sweetwater/internal/adapters/redis"
	"github.com/aretw0/sweetwater/internal/presentation/tui"
	"github.com/aretw0/sweetwater/pkg/adapters/memory"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/observability"
	"github.com/aretw0/sweetwater/pkg/ports"
	"golang.org/x/term"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	ConfigDir string
	RedisAddr string
	HTTPAddr  string
	Debug     bool
	Seed      *uint64

	// In and Out default to the process stdin and stdout.
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Play runs an interactive session until the player quits or a signal arrives.
func Play(parent context.Context, opts PlayOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	sc := NewSignalContext(parent)
	defer sc.Cancel()
	ctx := sc.Context

	logger := createLogger(opts.ErrOut, opts.Debug)
	metrics := observability.NewMetrics()
	events := memory.NewBroadcaster(16)

	restore, raw := makeRaw(opts.In)
	defer restore()

	presenters := []ports.Presenter{
		tui.NewPresenter(opts.Out, tui.WithRawMode(raw)),
		events,
	}
	if opts.RedisAddr != "" {
		pub := redis.New(opts.RedisAddr, "", 0, redis.WithLogger(logger))
		defer pub.Close()
		presenters = append(presenters, pub)
		logger.Info("Publishing snapshots", "addr", opts.RedisAddr, "channel", pub.Channel())
	}

	arcadeOpts := []sweetwater.Option{
		sweetwater.WithLogger(logger),
		sweetwater.WithConfigDir(opts.ConfigDir),
		sweetwater.WithPresenters(presenters...),
		sweetwater.WithLifecycleHooks(observability.Chain(
			observability.LogHooks(logger),
			metrics.Hooks(),
		)),
	}
	if opts.Seed != nil {
		arcadeOpts = append(arcadeOpts, sweetwater.WithSeed(*opts.Seed))
	}

	arcade, err := sweetwater.New(ctx, arcadeOpts...)
	if err != nil {
		return err
	}

	if opts.HTTPAddr != "" {
		handler := inspector.NewHandler(arcade.Snapshots(),
			inspector.WithWatcher(events),
			inspector.WithMetrics(metrics.Handler()),
			inspector.WithVersion(strings.TrimSpace(sweetwater.Version)),
			inspector.WithLogger(logger),
		)
		go func() {
			if err := inspector.Serve(ctx, opts.HTTPAddr, handler, logger); err != nil {
				logger.Error("Inspector stopped", "err", err)
			}
		}()
	}

	go func() {
		err := tui.ReadIntents(ctx, opts.In, func(intent domain.Intent) {
			arcade.Input(intent)
		})
		if err != nil && !isInterrupted(err) {
			logger.Error("Input failed", "err", err)
		}
		arcade.Stop()
	}()

	err = handleExecutionError(arcade.Run(ctx))
	restore()

	if sig := sc.Signal(); sig != nil {
		printSystemMessage(opts.Out, "Interrupted (%s).", sig)
	} else {
		printSystemMessage(opts.Out, "Thanks for playing!")
	}
	return err
}

// makeRaw switches a terminal stdin to raw mode so single key presses are read.
// restore is idempotent.
func makeRaw(in io.Reader) (restore func(), raw bool) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}, false
	}
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, false
	}

	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		if err := term.Restore(fd, state); err != nil {
			fmt.Fprintf(os.Stderr, "failed to restore terminal: %v\n", err)
		}
	}, true
}
