package sweetwater

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/sweetwater/internal/logging"
	"github.com/aretw0/sweetwater/internal/runtime"
	"github.com/aretw0/sweetwater/internal/stages"
	"github.com/aretw0/sweetwater/pkg/adapters/config"
	"github.com/aretw0/sweetwater/pkg/adapters/memory"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
	"github.com/google/uuid"
)

// Arcade is the high-level entry point of the library. It wires the catalog,
// the stages and the presenters around a single event loop.
type Arcade struct {
	loop    *schedule.Loop
	orch    *runtime.Orchestrator
	catalog domain.Catalog
	store   *memory.Store
	runID   string
	logger  *slog.Logger
}

type settings struct {
	loader     ports.CatalogLoader
	configDir  string
	presenters []ports.Presenter
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	stages     []ports.Stage
	runID      string
	seed       *uint64
}

// Option defines a functional option for configuring the Arcade.
type Option func(*settings)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithCatalogLoader injects the configuration source.
func WithCatalogLoader(l ports.CatalogLoader) Option {
	return func(s *settings) {
		s.loader = l
	}
}

// WithConfigDir loads the catalog from a directory of YAML/JSON documents.
func WithConfigDir(dir string) Option {
	return func(s *settings) {
		s.configDir = dir
	}
}

// WithPresenters adds snapshot subscribers.
func WithPresenters(presenters ...ports.Presenter) Option {
	return func(s *settings) {
		s.presenters = append(s.presenters, presenters...)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithStages replaces the default progression.
func WithStages(st ...ports.Stage) Option {
	return func(s *settings) {
		s.stages = st
	}
}

// WithRunID sets the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(s *settings) {
		s.runID = id
	}
}

// WithSeed makes persona selection and pickup placement reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = &seed
	}
}

// New loads the catalog and builds the arcade. A partially failing catalog is
// logged and completed with defaults; only cancellation is fatal.
func New(ctx context.Context, opts ...Option) (*Arcade, error) {
	s := &settings{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	switch {
	case s.loader != nil:
	case s.configDir != "":
		s.loader = config.FromDir(s.configDir, config.WithLogger(s.logger))
	default:
		s.loader = memory.NewLoader(domain.DefaultCatalog())
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}

	catalog, err := s.loader.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		s.logger.Warn("Catalog loaded with fallbacks", "err", err)
	}

	personaRand, gridRand := newRands(s.seed)
	if s.stages == nil {
		s.stages = stages.Defaults(stages.WithRand(gridRand))
	}

	store := memory.NewStore()
	loop := schedule.NewLoop()
	orch := runtime.NewOrchestrator(loop, catalog, s.stages,
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithPresenters(append([]ports.Presenter{store}, s.presenters...)...),
		runtime.WithRand(personaRand),
		runtime.WithRunID(s.runID),
		runtime.WithContext(ctx),
	)

	return &Arcade{
		loop:    loop,
		orch:    orch,
		catalog: catalog,
		store:   store,
		runID:   s.runID,
		logger:  s.logger,
	}, nil
}

func newRands(seed *uint64) (persona, grid *rand.Rand) {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, 1)), rand.New(rand.NewPCG(*seed, 2))
}

// Run shows the title screen and processes events until ctx is done or Stop
// is called. It blocks; all game logic runs on the calling goroutine.
func (a *Arcade) Run(ctx context.Context) error {
	a.loop.Post(a.orch.ShowTitle)
	a.logger.Info("Arcade running", "run_id", a.runID)
	return a.loop.Run(ctx)
}

// Input queues a player intent. It returns false once the arcade has stopped.
func (a *Arcade) Input(intent domain.Intent) bool {
	return a.loop.Post(func() {
		a.orch.HandleInput(intent)
	})
}

// Stop halts the event loop.
func (a *Arcade) Stop() {
	a.loop.Stop()
}

// RunID identifies this run in snapshots and events.
func (a *Arcade) RunID() string {
	return a.runID
}

// Catalog returns the configuration the arcade was built with.
func (a *Arcade) Catalog() domain.Catalog {
	return a.catalog
}

// Snapshots exposes the latest snapshot of the run for inspection.
func (a *Arcade) Snapshots() *memory.Store {
	return a.store
}
