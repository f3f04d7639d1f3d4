package tests

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

// FakeHost is a StageHost backed by a virtual clock. It applies the same session
// rules as the orchestrator and records everything a stage asks for.
type FakeHost struct {
	Clock   *schedule.Manual
	Scope   *schedule.Scope
	State   domain.Session
	Cat     domain.Catalog
	Rand    *rand.Rand
	Log     *slog.Logger
	Card    *domain.Card
	Board   *domain.Board
	Events  []domain.GridEventKind
	Shows   int
	Batches int

	// Advances counts calls to Advance.
	Advances int

	// Remainings records every published countdown value.
	Remainings []float64
}

// NewFakeHost creates a host on a fresh virtual clock.
func NewFakeHost(catalog domain.Catalog) *FakeHost {
	clock := schedule.NewManual(time.Unix(0, 0))
	return &FakeHost{
		Clock: clock,
		Scope: schedule.NewScope(clock),
		State: *domain.NewSession(min(catalog.Baseline(), domain.MaxAwareness)),
		Cat:   catalog,
		Rand:  rand.New(rand.NewPCG(1, 2)),
		Log:   slog.New(slog.DiscardHandler),
	}
}

func (h *FakeHost) Scheduler() schedule.Scheduler { return h.Scope }
func (h *FakeHost) Logger() *slog.Logger          { return h.Log }
func (h *FakeHost) Session() domain.Session       { return h.State }
func (h *FakeHost) Catalog() domain.Catalog       { return h.Cat }
func (h *FakeHost) AddScore(points int)           { h.State.AddScore(points) }
func (h *FakeHost) AdjustAwareness(delta float64) { h.State.AdjustAwareness(delta) }

func (h *FakeHost) ApplyBaseline() {
	h.State.Awareness = min(h.Cat.Baseline(), domain.MaxAwareness)
}

func (h *FakeHost) SelectPersona() *domain.Persona {
	if len(h.Cat.Personas) == 0 {
		return nil
	}
	p := h.Cat.Personas[h.Rand.IntN(len(h.Cat.Personas))]
	h.State.Persona = &p
	return h.State.Persona
}

func (h *FakeHost) SetRemaining(seconds float64) {
	h.State.SetRemaining(seconds)
	h.Remainings = append(h.Remainings, h.State.Remaining)
}

func (h *FakeHost) Show(card *domain.Card, board *domain.Board) {
	h.Card = card
	h.Board = board
	h.Shows++
}

func (h *FakeHost) Batch(fn func()) {
	h.Batches++
	fn()
}

func (h *FakeHost) RecordGridEvent(kind domain.GridEventKind, length int, board *domain.Board) {
	h.Events = append(h.Events, kind)
}

func (h *FakeHost) Advance() {
	h.Advances++
}
