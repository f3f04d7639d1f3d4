package stages

import (
	"math/rand/v2"
	"time"

	"github.com/aretw0/sweetwater/pkg/grid"
	"github.com/aretw0/sweetwater/pkg/ports"
)

// DefaultFrame is the cadence of countdown updates.
const DefaultFrame = 50 * time.Millisecond

// Options are shared by every stage constructor.
type Options struct {
	Frame    time.Duration
	Duration time.Duration
	Grid     grid.Config
	Rand     *rand.Rand
}

// Option configures a stage.
type Option func(*Options)

// WithFrame sets the countdown cadence.
func WithFrame(d time.Duration) Option {
	return func(o *Options) {
		o.Frame = d
	}
}

// WithDuration overrides the stage duration.
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		o.Duration = d
	}
}

// WithGridConfig sets the minigame tuning (sales stage only).
func WithGridConfig(cfg grid.Config) Option {
	return func(o *Options) {
		o.Grid = cfg
	}
}

// WithRand sets the randomness source (sales stage only).
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = rng
	}
}

func resolve(duration time.Duration, opts []Option) Options {
	o := Options{
		Frame:    DefaultFrame,
		Duration: duration,
		Grid:     grid.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Defaults builds the full progression with default durations. Options apply to
// every stage, so duration overrides are best passed to individual constructors.
func Defaults(opts ...Option) []ports.Stage {
	return []ports.Stage{
		NewMarketing(opts...),
		NewWildCustomer(opts...),
		NewSales(opts...),
		NewMerch(opts...),
		NewITHub(opts...),
		NewWarehouse(opts...),
		NewCelebration(opts...),
	}
}
