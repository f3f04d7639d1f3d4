package runtime

import (
	"log/slog"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

// host is the capability set handed to one stage activation. Once the
// activation has been left every mutating call is dropped.
type host struct {
	o *Orchestrator
	a *activation
}

var _ ports.StageHost = (*host)(nil)

func (h *host) live(op string) bool {
	if h.a.left || h.o.active != h.a {
		h.a.logger.Debug("Ignoring call from inactive stage", "op", op, "err", domain.ErrStaleStage)
		return false
	}
	return true
}

func (h *host) Scheduler() schedule.Scheduler { return h.a.scope }
func (h *host) Logger() *slog.Logger          { return h.a.logger }
func (h *host) Session() domain.Session       { return *h.o.session }
func (h *host) Catalog() domain.Catalog       { return h.o.catalog }

func (h *host) AddScore(points int) {
	if h.live("add_score") {
		h.o.addScore(points)
	}
}

func (h *host) AdjustAwareness(delta float64) {
	if h.live("adjust_awareness") {
		h.o.adjustAwareness(delta)
	}
}

func (h *host) ApplyBaseline() {
	if h.live("apply_baseline") {
		h.o.applyBaseline()
	}
}

func (h *host) SelectPersona() *domain.Persona {
	if !h.live("select_persona") {
		return h.o.session.Persona
	}
	return h.o.selectPersona()
}

func (h *host) SetRemaining(seconds float64) {
	if h.live("set_remaining") {
		h.o.session.SetRemaining(seconds)
		h.o.publish()
	}
}

func (h *host) Show(card *domain.Card, board *domain.Board) {
	if !h.live("show") {
		return
	}
	h.o.card = card
	h.o.board = board
	if !h.a.starting {
		h.o.publish()
	}
}

func (h *host) Batch(fn func()) {
	if !h.live("batch") {
		return
	}
	h.o.batch(fn)
}

func (h *host) RecordGridEvent(kind domain.GridEventKind, length int, board *domain.Board) {
	if h.live("grid_event") {
		h.o.recordGridEvent(kind, length, board)
	}
}

// Advance honours only the first request of the activation. A request made
// inside Start is deferred to the scheduler so Start never re-enters the orchestrator.
func (h *host) Advance() {
	if !h.live("advance") || h.a.advanced {
		return
	}
	h.a.advanced = true

	if h.a.starting {
		h.a.logger.Warn("Stage advanced inside Start; deferring")
		h.a.scope.AfterFunc(0, func() {
			if h.o.active == h.a {
				h.o.Advance()
			}
		})
		return
	}
	h.o.Advance()
}
