package stages

import (
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/grid"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

const (
	salesDuration = 2 * time.Minute
	salesOutro    = time.Second
)

// Sales runs the grid minigame. It owns two schedules: the simulation tick,
// re-armed with the current tick interval, and the countdown. When the countdown
// expires play simply continues; only a game over followed by a confirm ends the stage.
type Sales struct {
	opts Options
	sim  *grid.Simulator

	host       ports.StageHost
	state      grid.State
	timer      *countdown
	cancelTick schedule.CancelFunc
	completed  bool
}

// NewSales creates the sales stage.
func NewSales(opts ...Option) *Sales {
	o := resolve(salesDuration, opts)
	return &Sales{
		opts: o,
		sim:  grid.NewSimulator(o.Grid, o.Rand),
	}
}

func (s *Sales) ID() domain.StageID { return domain.StageSales }

// State returns the current simulation state.
func (s *Sales) State() grid.State {
	return s.state.Clone()
}

func (s *Sales) Start(host ports.StageHost) {
	s.host = host
	s.completed = false
	s.state = s.sim.NewState(host.Session().Persona)

	s.show()
	s.scheduleTick()
	s.timer = startCountdown(host, s.opts.Duration, s.opts.Frame, func() {
		host.Logger().Info("Time's up! Play continues until a crash")
	})
}

func (s *Sales) scheduleTick() {
	s.cancelTick = s.host.Scheduler().AfterFunc(s.state.TickInterval, s.tick)
}

func (s *Sales) tick() {
	session := s.host.Session()
	next, outcome := s.sim.Step(s.state, session.Awareness, session.Persona)
	s.state = next

	s.host.Batch(func() {
		s.apply(outcome)
		s.show()
	})

	if s.state.Running {
		s.scheduleTick()
	}
}

// apply routes the tick effects through the host: score first, then awareness.
func (s *Sales) apply(out grid.Outcome) {
	if out.Points != 0 {
		s.host.AddScore(out.Points)
	}
	if out.AwarenessDelta != 0 {
		s.host.AdjustAwareness(out.AwarenessDelta)
	}

	var kind domain.GridEventKind
	switch out.Event {
	case grid.EventCollected:
		kind = domain.GridPickupNeutral
		if out.Preferred {
			kind = domain.GridPickupPreferred
		}
	case grid.EventWallHit:
		kind = domain.GridWallHit
		s.host.Logger().Debug("Hit wall, turned safely", "heading", s.state.PendingHeading)
	case grid.EventSelfHit:
		kind = domain.GridSelfHit
		s.host.Logger().Info("Hit yourself, lost awareness", "length", s.state.Len())
	case grid.EventGameOver:
		kind = domain.GridGameOver
		s.host.Logger().Info("Game over", "awareness", s.host.Session().Awareness)
	default:
		return
	}

	board := s.sim.Board(s.state)
	s.host.RecordGridEvent(kind, s.state.Len(), &board)
}

func (s *Sales) show() {
	board := s.sim.Board(s.state)
	card := &domain.Card{
		Title:  "🛒 Sales Department",
		Prompt: "Use WASD or Arrow Keys to move",
	}
	if !s.state.Running {
		card = &domain.Card{
			Title:  "Time for a Break!",
			Body:   "You helped the customer find lots of gear!\n\nCEO: \"Amazing work! Ready to help the next customer?\"",
			Prompt: "Press SPACE to continue",
		}
	}
	s.host.Show(card, &board)
}

func (s *Sales) HandleInput(intent domain.Intent) {
	if h, ok := grid.HeadingFor(intent); ok {
		s.state = s.sim.Steer(s.state, h)
		return
	}
	if intent == domain.IntentConfirm && !s.state.Running {
		s.complete()
	}
}

func (s *Sales) complete() {
	if s.completed {
		return
	}
	s.completed = true
	s.stop()

	s.host.Logger().Info("Sales complete",
		"preferred", s.state.Counters.Preferred,
		"neutral", s.state.Counters.Neutral,
	)
	s.host.Scheduler().AfterFunc(salesOutro, s.host.Advance)
}

func (s *Sales) stop() {
	if s.cancelTick != nil {
		s.cancelTick()
	}
	s.timer.Stop()
}

func (s *Sales) Cleanup() {
	s.stop()
}
