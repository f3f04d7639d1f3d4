package grid_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, seed uint64, mutate ...func(*grid.Config)) *grid.Simulator {
	t.Helper()
	cfg := grid.DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	return grid.NewSimulator(cfg, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func cells(pairs ...int) []domain.Cell {
	out := make([]domain.Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Cell{Col: pairs[i], Row: pairs[i+1]})
	}
	return out
}

func running(occupant []domain.Cell, h grid.Heading) grid.State {
	return grid.State{
		Occupant:       occupant,
		Heading:        h,
		PendingHeading: h,
		TickInterval:   250 * time.Millisecond,
		Running:        true,
		Pickup:         &grid.Pickup{Cell: domain.Cell{Col: 0, Row: 11}, Symbol: "🎵"},
	}
}

func assertUnique(t *testing.T, occupant []domain.Cell) {
	t.Helper()
	seen := map[domain.Cell]bool{}
	for _, c := range occupant {
		assert.False(t, seen[c], "duplicate occupant cell %v", c)
		seen[c] = true
	}
}

func TestSimulator_NewState(t *testing.T) {
	sim := newSim(t, 1)
	st := sim.NewState(nil)

	assert.True(t, st.Running)
	assert.Equal(t, cells(10, 6, 9, 6, 8, 6), st.Occupant)
	assert.Equal(t, grid.Right, st.Heading)
	assert.Equal(t, 250*time.Millisecond, st.TickInterval)
	require.NotNil(t, st.Pickup)
	assert.False(t, st.Occupies(st.Pickup.Cell))
}

func TestSimulator_ClearTickMovesWithConstantLength(t *testing.T) {
	sim := newSim(t, 1)
	in := running(cells(10, 6, 9, 6, 8, 6), grid.Right)

	out, outcome := sim.Step(in, 1.2, nil)

	assert.Equal(t, grid.EventMoved, outcome.Event)
	assert.Equal(t, cells(11, 6, 10, 6, 9, 6), out.Occupant)
	assert.Equal(t, cells(10, 6, 9, 6, 8, 6), in.Occupant, "input state must not be mutated")
	assert.Zero(t, outcome.Points)
	assert.Zero(t, outcome.AwarenessDelta)
}

func TestSimulator_PendingHeadingCommittedOncePerTick(t *testing.T) {
	sim := newSim(t, 1)
	st := running(cells(10, 6, 9, 6, 8, 6), grid.Right)

	st = sim.Steer(st, grid.Up)
	st = sim.Steer(st, grid.Down) // also perpendicular to the current heading, last one wins
	st, _ = sim.Step(st, 1.2, nil)

	assert.Equal(t, grid.Down, st.Heading)
	assert.Equal(t, domain.Cell{Col: 10, Row: 7}, st.Head())
}

func TestSimulator_SteerIgnoresReversal(t *testing.T) {
	sim := newSim(t, 1)
	st := running(cells(10, 6, 9, 6, 8, 6), grid.Right)

	assert.Equal(t, grid.Right, sim.Steer(st, grid.Left).PendingHeading)
	assert.Equal(t, grid.Up, sim.Steer(st, grid.Up).PendingHeading)

	pending := sim.Steer(st, grid.Up)
	assert.Equal(t, grid.Right, sim.Steer(pending, grid.Right).PendingHeading, "equal heading is accepted")

	stopped := st
	stopped.Running = false
	assert.Equal(t, grid.Right, sim.Steer(stopped, grid.Up).PendingHeading)
}

func TestSimulator_WallCollisionKeepsLength(t *testing.T) {
	starts := []struct {
		name     string
		occupant []domain.Cell
		heading  grid.Heading
	}{
		{"right wall", cells(19, 6, 18, 6, 17, 6), grid.Right},
		{"top wall", cells(5, 0, 5, 1, 5, 2), grid.Up},
		{"bottom right corner", cells(19, 11, 18, 11, 17, 11), grid.Right},
		{"top left corner", cells(0, 0, 0, 1, 0, 2), grid.Up},
	}

	for _, tc := range starts {
		t.Run(tc.name, func(t *testing.T) {
			for seed := uint64(0); seed < 200; seed++ {
				sim := newSim(t, seed)
				in := running(tc.occupant, tc.heading)

				out, outcome := sim.Step(in, 1.0, nil)

				require.Equal(t, grid.EventWallHit, outcome.Event)
				assert.Equal(t, -0.05, outcome.AwarenessDelta)
				assert.Equal(t, in.Len(), out.Len())
				assert.True(t, out.Running)
				assert.NotEqual(t, tc.heading.Reverse(), out.PendingHeading)
				assert.Equal(t, 1, out.Counters.WallHits)
				for _, c := range out.Occupant {
					assert.True(t, sim.Config().InBounds(c))
				}
				assertUnique(t, out.Occupant)
			}
		})
	}
}

func TestSimulator_WallTurnNeverEntersBody(t *testing.T) {
	// Head in the top right corner heading right: right and up leave the board
	// and down is the body at (19,1), so no turn can move.
	occupant := cells(19, 0, 18, 0, 18, 1, 19, 1, 19, 2)

	for seed := uint64(0); seed < 50; seed++ {
		sim := newSim(t, seed)
		in := running(occupant, grid.Right)

		out, outcome := sim.Step(in, 1.0, nil)

		require.Equal(t, grid.EventWallHit, outcome.Event)
		assert.Equal(t, in.Occupant, out.Occupant)
		assert.Contains(t, []grid.Heading{grid.Right, grid.Up, grid.Down}, out.PendingHeading)
		assert.Equal(t, 1, out.Counters.WallHits)
		assertUnique(t, out.Occupant)
	}
}

func TestSimulator_SelfCollisionAbsorbed(t *testing.T) {
	sim := newSim(t, 1)
	// Head at (5,5) heading down into its own body at (5,6).
	in := running(cells(5, 5, 6, 5, 6, 6, 5, 6, 4, 6), grid.Down)

	out, outcome := sim.Step(in, 1.0, nil)

	assert.Equal(t, grid.EventSelfHit, outcome.Event)
	assert.Equal(t, -0.2, outcome.AwarenessDelta)
	assert.True(t, out.Running)
	assert.Equal(t, in.Head(), out.Head(), "head does not move")
	assert.Equal(t, in.Len()-1, out.Len())
	assert.Equal(t, 1, out.Counters.SelfHits)
}

func TestSimulator_SelfCollisionNeverShrinksBelowMinimum(t *testing.T) {
	sim := newSim(t, 1)
	in := running(cells(5, 5, 5, 6, 6, 6), grid.Down)

	out, outcome := sim.Step(in, 0.5, nil)

	assert.Equal(t, grid.EventSelfHit, outcome.Event)
	assert.Equal(t, 3, out.Len())
}

func TestSimulator_SelfCollisionWithLowAwarenessEndsRun(t *testing.T) {
	sim := newSim(t, 1)
	in := running(cells(5, 5, 6, 5, 6, 6, 5, 6, 4, 6), grid.Down)

	out, outcome := sim.Step(in, 0.49, nil)

	assert.Equal(t, grid.EventGameOver, outcome.Event)
	assert.Zero(t, outcome.AwarenessDelta)
	assert.False(t, out.Running)
	assert.Equal(t, in.Occupant, out.Occupant)
	assert.Equal(t, in.Pickup, out.Pickup)

	for i := 0; i < 5; i++ {
		next, o := sim.Step(out, 2.0, nil)
		assert.Equal(t, grid.EventIdle, o.Event)
		assert.Equal(t, out.Occupant, next.Occupant)
		assert.Equal(t, out.Pickup, next.Pickup)
		out = next
	}
}

func TestSimulator_Collection(t *testing.T) {
	t.Run("neutral", func(t *testing.T) {
		sim := newSim(t, 3)
		in := running(cells(10, 6, 9, 6, 8, 6), grid.Right)
		in.Pickup = &grid.Pickup{Cell: domain.Cell{Col: 11, Row: 6}, Symbol: "🎵"}

		out, outcome := sim.Step(in, 1.2, nil)

		assert.Equal(t, grid.EventCollected, outcome.Event)
		assert.Equal(t, 25, outcome.Points)
		assert.Zero(t, outcome.AwarenessDelta)
		assert.Equal(t, 4, out.Len())
		assert.Equal(t, 1, out.Counters.Neutral)
		assert.Equal(t, 247*time.Millisecond, out.TickInterval)
		require.NotNil(t, out.Pickup)
		assert.False(t, out.Occupies(out.Pickup.Cell))
	})

	t.Run("preferred", func(t *testing.T) {
		sim := newSim(t, 3)
		in := running(cells(10, 6, 9, 6, 8, 6), grid.Right)
		in.Pickup = &grid.Pickup{Cell: domain.Cell{Col: 11, Row: 6}, Preferred: true, Symbol: "🎸"}

		out, outcome := sim.Step(in, 1.2, nil)

		assert.Equal(t, 100, outcome.Points)
		assert.Equal(t, 0.1, outcome.AwarenessDelta)
		assert.True(t, outcome.Preferred)
		assert.Equal(t, 1, out.Counters.Preferred)
	})
}

func TestSimulator_TickIntervalReachesFloor(t *testing.T) {
	sim := newSim(t, 5, func(c *grid.Config) { c.Width = 200 })
	st := sim.NewState(nil)

	collect := func() {
		st.Pickup = &grid.Pickup{Cell: grid.Right.Apply(st.Head()), Symbol: "🎵"}
		var outcome grid.Outcome
		st, outcome = sim.Step(st, 1.0, nil)
		require.Equal(t, grid.EventCollected, outcome.Event)
	}

	prev := st.TickInterval
	for i := 0; i < 44; i++ {
		collect()
		assert.LessOrEqual(t, st.TickInterval, prev, "speed never regresses")
		prev = st.TickInterval
	}
	assert.Equal(t, 120*time.Millisecond, st.TickInterval)

	for i := 0; i < 5; i++ {
		collect()
		assert.Equal(t, 120*time.Millisecond, st.TickInterval)
	}
}

func TestSimulator_SpawnNeverOnOccupant(t *testing.T) {
	sim := newSim(t, 42)
	cfg := sim.Config()
	rng := rand.New(rand.NewPCG(7, 11))
	total := cfg.Width * cfg.Height

	for i := 0; i < 10000; i++ {
		var occupant []domain.Cell
		taken := map[domain.Cell]bool{}
		size := 1 + rng.IntN(total-1)
		for _, idx := range rng.Perm(total)[:size] {
			c := domain.Cell{Col: idx % cfg.Width, Row: idx / cfg.Width}
			occupant = append(occupant, c)
			taken[c] = true
		}

		p := sim.SpawnPickup(occupant, nil)
		require.NotNil(t, p)
		require.True(t, cfg.InBounds(p.Cell))
		if taken[p.Cell] {
			t.Fatalf("spawn %d landed on occupant cell %v", i, p.Cell)
		}
	}
}

func TestSimulator_SpawnOnFullBoard(t *testing.T) {
	sim := newSim(t, 1, func(c *grid.Config) { c.Width, c.Height = 2, 2 })
	assert.Nil(t, sim.SpawnPickup(cells(0, 0, 1, 0, 1, 1, 0, 1), nil))
}

func TestSimulator_SpawnSymbols(t *testing.T) {
	persona := &domain.Persona{ID: "touring_pro", Rewards: []string{"🎸"}}

	always := newSim(t, 9, func(c *grid.Config) { c.PreferredChance = 1 })
	never := newSim(t, 9, func(c *grid.Config) { c.PreferredChance = 0 })

	for i := 0; i < 100; i++ {
		p := always.SpawnPickup(nil, persona)
		assert.True(t, p.Preferred)
		assert.Equal(t, "🎸", p.Symbol)

		p = always.SpawnPickup(nil, nil)
		assert.True(t, p.Preferred)
		assert.Contains(t, domain.NeutralRewards, p.Symbol)

		p = never.SpawnPickup(nil, persona)
		assert.False(t, p.Preferred)
		assert.Contains(t, domain.NeutralRewards, p.Symbol)
	}
}

func TestSimulator_Board(t *testing.T) {
	sim := newSim(t, 1)
	st := running(cells(10, 6, 9, 6, 8, 6), grid.Right)

	b := sim.Board(st)
	assert.Equal(t, 20, b.Width)
	assert.Equal(t, 12, b.Height)
	assert.Equal(t, st.Occupant, b.Occupant)
	require.NotNil(t, b.Pickup)
	assert.Equal(t, st.Pickup.Cell, b.Pickup.Cell)
	assert.True(t, b.Running)
}
