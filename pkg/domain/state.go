package domain

import "math"

const (
	// MaxAwareness is the upper clamp applied on every awareness mutation.
	MaxAwareness = 3.0

	// DefaultBaselineMultiplier is used when the marketing configuration is unavailable.
	DefaultBaselineMultiplier = 1.2
)

// StageID identifies a stage of the session progression.
type StageID string

const (
	StageTitle        StageID = "title"
	StageMarketing    StageID = "marketing"
	StageWildCustomer StageID = "wildCustomer"
	StageSales        StageID = "sales"
	StageMerch        StageID = "merch"
	StageITHub        StageID = "itHub"
	StageWarehouse    StageID = "warehouse"
	StageCelebration  StageID = "celebration"
)

// Session represents the mutable record shared across the stages of one run.
type Session struct {
	// Score is the accumulated, awareness-weighted score. Never negative.
	Score int `json:"score"`

	// Awareness multiplies every reward. Clamped above at MaxAwareness.
	Awareness float64 `json:"awareness"`

	// Remaining is the countdown of the active stage, in seconds.
	Remaining float64 `json:"remaining"`

	// Persona is the active customer archetype (nil before the first selection).
	Persona *Persona `json:"persona,omitempty"`

	// Stage is the active stage.
	Stage StageID `json:"stage"`
}

// NewSession creates a clean session sitting on the title screen.
func NewSession(baseline float64) *Session {
	return &Session{
		Awareness: baseline,
		Stage:     StageTitle,
	}
}

// AddScore adds points weighted by the current awareness (floored).
func (s *Session) AddScore(points int) int {
	gained := int(math.Floor(float64(points) * s.Awareness))
	s.Score += gained
	if s.Score < 0 {
		s.Score = 0
	}
	return gained
}

// AdjustAwareness adds delta and clamps the result to MaxAwareness.
// There is no lower clamp.
func (s *Session) AdjustAwareness(delta float64) {
	s.Awareness = math.Min(s.Awareness+delta, MaxAwareness)
}

// SetRemaining publishes the active stage countdown.
func (s *Session) SetRemaining(seconds float64) {
	s.Remaining = math.Max(0, seconds)
}
