package grid

import (
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Pickup is the single collectible on the board.
type Pickup struct {
	Cell      domain.Cell
	Preferred bool
	Symbol    string
}

// State is the full simulation state of one minigame.
type State struct {
	// Occupant is the player entity, head first.
	Occupant []domain.Cell

	Heading Heading

	// PendingHeading is committed at the start of the next tick.
	PendingHeading Heading

	Pickup *Pickup

	TickInterval time.Duration
	Running      bool

	Counters domain.BoardCounters
}

// Head returns the first occupant cell.
func (s State) Head() domain.Cell {
	return s.Occupant[0]
}

// Len returns the occupant length.
func (s State) Len() int {
	return len(s.Occupant)
}

// Occupies reports whether c is part of the occupant.
func (s State) Occupies(c domain.Cell) bool {
	return occupies(s.Occupant, c)
}

// Clone returns a deep copy so that transitions never alias their input.
func (s State) Clone() State {
	out := s
	out.Occupant = append([]domain.Cell(nil), s.Occupant...)
	if s.Pickup != nil {
		p := *s.Pickup
		out.Pickup = &p
	}
	return out
}

func occupies(cells []domain.Cell, c domain.Cell) bool {
	for _, o := range cells {
		if o == c {
			return true
		}
	}
	return false
}
