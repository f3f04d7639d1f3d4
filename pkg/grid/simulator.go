package grid

import (
	"math/rand/v2"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Event classifies what a single tick did.
type Event string

const (
	EventIdle      Event = "idle" // simulation already stopped
	EventMoved     Event = "moved"
	EventCollected Event = "collected"
	EventWallHit   Event = "wall_hit"
	EventSelfHit   Event = "self_hit"
	EventGameOver  Event = "game_over"
)

// Outcome lists the session effects of a tick. Points must be applied before
// AwarenessDelta so the reward uses the awareness in effect when it was earned.
type Outcome struct {
	Event          Event
	Points         int
	AwarenessDelta float64
	Preferred      bool
}

// Simulator advances grid states. Its only side effect is consuming randomness.
type Simulator struct {
	cfg Config
	rng *rand.Rand
}

// NewSimulator creates a simulator. A nil rng uses a randomly seeded source.
func NewSimulator(cfg Config, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Simulator{cfg: cfg, rng: rng}
}

// Config returns the simulator tuning.
func (s *Simulator) Config() Config {
	return s.cfg
}

// NewState builds the initial running state with a first pickup spawned.
func (s *Simulator) NewState(persona *domain.Persona) State {
	st := State{
		Occupant:       append([]domain.Cell(nil), s.cfg.Start...),
		Heading:        s.cfg.Heading,
		PendingHeading: s.cfg.Heading,
		TickInterval:   s.cfg.TickInterval,
		Running:        true,
	}
	st.Pickup = s.SpawnPickup(st.Occupant, persona)
	return st
}

// Steer buffers a heading change for the next tick. Reversals of the current
// heading are ignored, as is any input once the simulation has stopped.
func (s *Simulator) Steer(st State, h Heading) State {
	if !st.Running {
		return st
	}
	if h != st.Heading && !h.IsPerpendicular(st.Heading) {
		return st
	}
	st.PendingHeading = h
	return st
}

// Step runs one tick.
func (s *Simulator) Step(in State, awareness float64, persona *domain.Persona) (State, Outcome) {
	if !in.Running {
		return in, Outcome{Event: EventIdle}
	}

	st := in.Clone()
	st.Heading = st.PendingHeading
	candidate := st.Heading.Apply(st.Head())

	switch {
	case !s.cfg.InBounds(candidate):
		return s.steerOffWall(st)
	case st.Occupies(candidate):
		return s.absorbSelfHit(st, awareness)
	}

	st.Occupant = append([]domain.Cell{candidate}, st.Occupant...)
	if st.Pickup != nil && st.Pickup.Cell == candidate {
		return s.collect(st, persona)
	}
	st.Occupant = st.Occupant[:len(st.Occupant)-1]
	return st, Outcome{Event: EventMoved}
}

func (s *Simulator) steerOffWall(st State) (State, Outcome) {
	safe := make([]Heading, 0, len(Cardinals))
	for _, h := range Cardinals {
		if h != st.Heading.Reverse() {
			safe = append(safe, h)
		}
	}
	turn := safe[s.rng.IntN(len(safe))]
	st.PendingHeading = turn

	next := turn.Apply(st.Head())
	body := st.Occupant[:len(st.Occupant)-1]
	if s.cfg.InBounds(next) && !occupies(body, next) {
		st.Occupant = append([]domain.Cell{next}, body...)
	}

	st.Counters.WallHits++
	return st, Outcome{Event: EventWallHit, AwarenessDelta: s.cfg.WallPenalty}
}

func (s *Simulator) absorbSelfHit(st State, awareness float64) (State, Outcome) {
	if awareness < s.cfg.GameOverAwareness {
		// Terminal: occupant and pickup are left exactly as they were.
		st.Running = false
		return st, Outcome{Event: EventGameOver}
	}

	if len(st.Occupant) > s.cfg.MinLength {
		st.Occupant = st.Occupant[:len(st.Occupant)-1]
	}
	st.Counters.SelfHits++
	return st, Outcome{Event: EventSelfHit, AwarenessDelta: s.cfg.SelfPenalty}
}

func (s *Simulator) collect(st State, persona *domain.Persona) (State, Outcome) {
	out := Outcome{Event: EventCollected, Preferred: st.Pickup.Preferred}
	if st.Pickup.Preferred {
		out.Points = s.cfg.PreferredPoints
		out.AwarenessDelta = s.cfg.PreferredAwareness
		st.Counters.Preferred++
	} else {
		out.Points = s.cfg.NeutralPoints
		st.Counters.Neutral++
	}

	st.Pickup = s.SpawnPickup(st.Occupant, persona)

	if st.TickInterval > s.cfg.MinTickInterval {
		st.TickInterval -= s.cfg.TickStep
		if st.TickInterval < s.cfg.MinTickInterval {
			st.TickInterval = s.cfg.MinTickInterval
		}
	}
	return st, out
}

// SpawnPickup places a pickup on a uniformly random free cell. It returns nil
// only when the occupant covers the whole board.
func (s *Simulator) SpawnPickup(occupant []domain.Cell, persona *domain.Persona) *Pickup {
	cell, ok := s.freeCell(occupant)
	if !ok {
		return nil
	}

	preferred := s.rng.Float64() < s.cfg.PreferredChance
	set := domain.NeutralRewards
	if preferred && persona != nil {
		set = persona.RewardSet()
	}

	return &Pickup{
		Cell:      cell,
		Preferred: preferred,
		Symbol:    set[s.rng.IntN(len(set))],
	}
}

func (s *Simulator) freeCell(occupant []domain.Cell) (domain.Cell, bool) {
	total := s.cfg.Width * s.cfg.Height
	if len(occupant) < total {
		for attempt := 0; attempt < 4*total; attempt++ {
			c := domain.Cell{Col: s.rng.IntN(s.cfg.Width), Row: s.rng.IntN(s.cfg.Height)}
			if !occupies(occupant, c) {
				return c, true
			}
		}
	}

	// Nearly full board: sample uniformly among the remaining cells.
	free := make([]domain.Cell, 0, total)
	for row := 0; row < s.cfg.Height; row++ {
		for col := 0; col < s.cfg.Width; col++ {
			c := domain.Cell{Col: col, Row: row}
			if !occupies(occupant, c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return domain.Cell{}, false
	}
	return free[s.rng.IntN(len(free))], true
}

// Board converts a state into its presentation view.
func (s *Simulator) Board(st State) domain.Board {
	b := domain.Board{
		Width:        s.cfg.Width,
		Height:       s.cfg.Height,
		Occupant:     append([]domain.Cell(nil), st.Occupant...),
		Counters:     st.Counters,
		Running:      st.Running,
		TickInterval: st.TickInterval,
	}
	if st.Pickup != nil {
		b.Pickup = &domain.BoardPickup{
			Cell:      st.Pickup.Cell,
			Preferred: st.Pickup.Preferred,
			Symbol:    st.Pickup.Symbol,
		}
	}
	return b
}
