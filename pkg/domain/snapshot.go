package domain

import "time"

// Card is the static content a non-simulated stage asks presenters to show.
// Body is markdown.
type Card struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Prompt string `json:"prompt,omitempty"`
}

// Cell is a grid coordinate.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// BoardPickup is the presentation view of a collectible.
type BoardPickup struct {
	Cell      Cell   `json:"cell"`
	Preferred bool   `json:"preferred"`
	Symbol    string `json:"symbol"`
}

// BoardCounters are the observability counters of the grid minigame.
type BoardCounters struct {
	Preferred int `json:"preferred"`
	Neutral   int `json:"neutral"`
	WallHits  int `json:"wall_hits"`
	SelfHits  int `json:"self_hits"`
}

// Board is the presentation view of the grid minigame.
type Board struct {
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Occupant     []Cell        `json:"occupant"`
	Pickup       *BoardPickup  `json:"pickup,omitempty"`
	Counters     BoardCounters `json:"counters"`
	Running      bool          `json:"running"`
	TickInterval time.Duration `json:"tick_interval"`
}

// Snapshot is everything a presenter needs to draw the current frame.
type Snapshot struct {
	RunID     string    `json:"run_id"`
	Stage     StageID   `json:"stage"`
	Score     int       `json:"score"`
	Awareness float64   `json:"awareness"`
	Remaining float64   `json:"remaining"`
	Persona   *Persona  `json:"persona,omitempty"`
	Card      *Card     `json:"card,omitempty"`
	Board     *Board    `json:"board,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
