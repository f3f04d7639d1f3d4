package ports

import (
	"log/slog"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

// Stage is one phase of the session progression.
//
// Start is invoked exactly once per activation. It must arrange for exactly one
// future call to StageHost.Advance (on a timer, on a terminal input, or when its
// own simulation completes) and must never advance synchronously.
type Stage interface {
	ID() domain.StageID
	Start(host StageHost)
}

// InputHandler is implemented by stages that react to player intents.
type InputHandler interface {
	HandleInput(intent domain.Intent)
}

// Cleaner is implemented by stages that hold resources beyond their scheduler scope.
// Cleanup runs before the next stage is activated.
type Cleaner interface {
	Cleanup()
}

// StageHost is the capability-scoped view of the orchestrator handed to a stage
// activation. Calls made through a host whose stage is no longer active are ignored.
type StageHost interface {
	// Scheduler returns the scope owning this activation's schedules.
	// It is closed by the orchestrator when the stage is left.
	Scheduler() schedule.Scheduler

	// Logger returns a logger annotated with the stage.
	Logger() *slog.Logger

	// Session returns a read-only copy of the session.
	Session() domain.Session

	// Catalog returns the configuration loaded at session init.
	Catalog() domain.Catalog

	// AddScore adds floor(points x awareness) to the score.
	AddScore(points int)

	// AdjustAwareness adds delta, clamped above at domain.MaxAwareness.
	AdjustAwareness(delta float64)

	// ApplyBaseline sets awareness to the configured baseline multiplier.
	ApplyBaseline()

	// SelectPersona picks a random persona different from the current one.
	// It returns nil when no persona is configured.
	SelectPersona() *domain.Persona

	// SetRemaining publishes the stage countdown in seconds.
	SetRemaining(seconds float64)

	// Show replaces the presentation content of the stage (either may be nil).
	Show(card *domain.Card, board *domain.Board)

	// Batch runs fn and publishes one snapshot once it returns, instead of one
	// per mutation made inside it.
	Batch(fn func())

	// RecordGridEvent reports a simulation event to lifecycle hooks.
	RecordGridEvent(kind domain.GridEventKind, length int, board *domain.Board)

	// Advance requests the next stage. Only the first call of an activation counts.
	Advance()
}
