package grid

import (
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Config holds the tunables of the minigame.
type Config struct {
	Width  int
	Height int

	// Start is the initial occupant, head first.
	Start   []domain.Cell
	Heading Heading

	TickInterval    time.Duration
	MinTickInterval time.Duration
	TickStep        time.Duration

	// MinLength bounds the self collision shrink penalty.
	MinLength int

	PreferredChance    float64
	PreferredPoints    int
	NeutralPoints      int
	PreferredAwareness float64

	WallPenalty float64
	SelfPenalty float64

	// GameOverAwareness is the threshold below which a self collision ends the run.
	GameOverAwareness float64
}

// DefaultConfig returns the tuning of the sales stage.
func DefaultConfig() Config {
	return Config{
		Width:  20,
		Height: 12,
		Start: []domain.Cell{
			{Col: 10, Row: 6},
			{Col: 9, Row: 6},
			{Col: 8, Row: 6},
		},
		Heading:            Right,
		TickInterval:       250 * time.Millisecond,
		MinTickInterval:    120 * time.Millisecond,
		TickStep:           3 * time.Millisecond,
		MinLength:          3,
		PreferredChance:    0.3,
		PreferredPoints:    100,
		NeutralPoints:      25,
		PreferredAwareness: 0.1,
		WallPenalty:        -0.05,
		SelfPenalty:        -0.2,
		GameOverAwareness:  0.5,
	}
}

// InBounds reports whether c lies on the board.
func (c Config) InBounds(cell domain.Cell) bool {
	return cell.Col >= 0 && cell.Col < c.Width && cell.Row >= 0 && cell.Row < c.Height
}
