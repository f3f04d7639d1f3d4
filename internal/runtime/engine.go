package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/aretw0/sweetwater/internal/logging"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
	"github.com/aretw0/sweetwater/pkg/schedule"
)

// Orchestrator owns the session and drives stage transitions in a fixed order.
//
// It is not safe for concurrent use: every method, and every stage callback, must run
// on the scheduler's event loop.
type Orchestrator struct {
	sched      schedule.Scheduler
	catalog    domain.Catalog
	stages     map[domain.StageID]ports.Stage
	order      []domain.StageID
	presenters []ports.Presenter
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	rng        *rand.Rand
	runID      string
	ctx        context.Context

	session *domain.Session
	active  *activation
	card    *domain.Card
	board   *domain.Board

	// batching counts nested Batch calls; dirty records a publish held back by them.
	batching int
	dirty    bool
}

// activation is one Start of one stage.
type activation struct {
	stage    ports.Stage
	scope    *schedule.Scope
	logger   *slog.Logger
	starting bool
	advanced bool
	left     bool
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger configures a logger for the Orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithPresenters registers snapshot subscribers.
func WithPresenters(presenters ...ports.Presenter) Option {
	return func(o *Orchestrator) {
		o.presenters = append(o.presenters, presenters...)
	}
}

// WithRand sets the randomness source used for persona selection.
func WithRand(rng *rand.Rand) Option {
	return func(o *Orchestrator) {
		o.rng = rng
	}
}

// WithRunID labels snapshots and events.
func WithRunID(id string) Option {
	return func(o *Orchestrator) {
		o.runID = id
	}
}

// WithOrder overrides the stage progression.
func WithOrder(order ...domain.StageID) Option {
	return func(o *Orchestrator) {
		o.order = order
	}
}

// WithContext sets the context handed to hooks and presenters.
func WithContext(ctx context.Context) Option {
	return func(o *Orchestrator) {
		o.ctx = ctx
	}
}

// NewOrchestrator creates an orchestrator sitting on the title screen.
func NewOrchestrator(sched schedule.Scheduler, catalog domain.Catalog, stages []ports.Stage, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sched:   sched,
		catalog: catalog,
		stages:  make(map[domain.StageID]ports.Stage, len(stages)),
		order:   DefaultOrder,
		logger:  logging.NewNop(),
		ctx:     context.Background(),
	}
	for _, s := range stages {
		o.stages[s.ID()] = s
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.runID != "" {
		o.logger = o.logger.With("run_id", o.runID)
	}
	o.session = domain.NewSession(o.baseline())
	return o
}

// Session returns a copy of the current session.
func (o *Orchestrator) Session() domain.Session {
	return *o.session
}

// Snapshot returns the current presentation snapshot.
func (o *Orchestrator) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		RunID:     o.runID,
		Stage:     o.session.Stage,
		Score:     o.session.Score,
		Awareness: o.session.Awareness,
		Remaining: o.session.Remaining,
		Persona:   o.session.Persona,
		Card:      o.card,
		Board:     o.board,
		Timestamp: o.sched.Now(),
	}
}

// ShowTitle leaves any active stage and resets the session to its defaults.
func (o *Orchestrator) ShowTitle() {
	o.leave()
	o.session = domain.NewSession(o.baseline())
	o.card = &domain.Card{
		Title:  "Sweetwater Arcade",
		Body:   "Help every customer find their perfect gear.",
		Prompt: "Press SPACE to start",
	}
	o.board = nil
	o.logger.Info("Title screen", "baseline", o.session.Awareness)
	o.publish()
}

// StartGame enters the first stage. It only has an effect on the title screen.
func (o *Orchestrator) StartGame() {
	if o.session.Stage != domain.StageTitle {
		return
	}
	o.logger.Info("Starting game")
	o.enterFrom(domain.StageTitle)
}

// Advance leaves the active stage and activates its successor, or returns to
// the title when the progression is complete.
func (o *Orchestrator) Advance() {
	current := o.session.Stage
	o.leave()
	o.enterFrom(current)
}

// HandleInput routes an intent to the title screen or the active stage.
func (o *Orchestrator) HandleInput(intent domain.Intent) {
	if o.session.Stage == domain.StageTitle {
		if intent == domain.IntentConfirm {
			o.StartGame()
		}
		return
	}
	if o.active == nil || o.active.left {
		return
	}
	if h, ok := o.active.stage.(ports.InputHandler); ok {
		h.HandleInput(intent)
	}
}

// enterFrom activates the first registered successor of current.
func (o *Orchestrator) enterFrom(current domain.StageID) {
	for {
		next, ok := NextStage(o.order, current)
		if !ok {
			o.ShowTitle()
			return
		}
		if err := o.activate(next); err != nil {
			o.logger.Warn("Skipping stage", "stage", next, "err", err)
			current = next
			continue
		}
		return
	}
}

func (o *Orchestrator) activate(id domain.StageID) error {
	stage, ok := o.stages[id]
	if !ok {
		return fmt.Errorf("activate %q: %w", id, domain.ErrUnknownStage)
	}

	a := &activation{
		stage:    stage,
		scope:    schedule.NewScope(o.sched),
		logger:   o.logger.With("stage", id),
		starting: true,
	}
	o.active = a
	o.session.Stage = id
	o.session.Remaining = 0
	o.card = nil
	o.board = nil

	o.logger.Info("Enter stage", "stage", id)
	if o.hooks.OnStageEnter != nil {
		o.hooks.OnStageEnter(o.ctx, &domain.StageEvent{
			EventBase: o.eventBase(domain.EventStageEnter),
			StageID:   id,
		})
	}

	stage.Start(&host{o: o, a: a})
	a.starting = false
	o.publish()
	return nil
}

// leave cleans up the active stage: its cleanup hook runs, its schedules are
// cancelled and its input is detached before anything else is activated.
func (o *Orchestrator) leave() {
	a := o.active
	if a == nil {
		return
	}
	o.active = nil
	a.left = true

	if c, ok := a.stage.(ports.Cleaner); ok {
		c.Cleanup()
	}
	a.scope.Close()

	o.logger.Info("Leave stage", "stage", a.stage.ID())
	if o.hooks.OnStageLeave != nil {
		o.hooks.OnStageLeave(o.ctx, &domain.StageEvent{
			EventBase: o.eventBase(domain.EventStageLeave),
			StageID:   a.stage.ID(),
		})
	}
}

// baseline is the configured awareness gift, clamped like any other awareness.
func (o *Orchestrator) baseline() float64 {
	return math.Min(o.catalog.Baseline(), domain.MaxAwareness)
}

func (o *Orchestrator) eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: o.sched.Now(), Type: t, RunID: o.runID}
}

// batch defers publishing until fn returns, then publishes once if anything
// asked for it.
func (o *Orchestrator) batch(fn func()) {
	o.batching++
	defer func() {
		o.batching--
		if o.batching == 0 && o.dirty {
			o.dirty = false
			o.publish()
		}
	}()
	fn()
}

func (o *Orchestrator) publish() {
	if o.batching > 0 {
		o.dirty = true
		return
	}
	snap := o.Snapshot()
	for _, p := range o.presenters {
		if err := p.Present(o.ctx, snap); err != nil {
			o.logger.Warn("Presenter failed", "err", err)
		}
	}
}

func (o *Orchestrator) sessionEvent(t domain.EventType, delta float64) *domain.SessionEvent {
	return &domain.SessionEvent{
		EventBase: o.eventBase(t),
		StageID:   o.session.Stage,
		Delta:     delta,
		Score:     o.session.Score,
		Awareness: o.session.Awareness,
	}
}

func (o *Orchestrator) addScore(points int) {
	gained := o.session.AddScore(points)
	if o.hooks.OnScore != nil {
		o.hooks.OnScore(o.ctx, o.sessionEvent(domain.EventScore, float64(gained)))
	}
	o.publish()
}

func (o *Orchestrator) adjustAwareness(delta float64) {
	o.session.AdjustAwareness(delta)
	o.awarenessChanged(delta)
}

func (o *Orchestrator) applyBaseline() {
	before := o.session.Awareness
	o.session.Awareness = o.baseline()
	o.awarenessChanged(o.session.Awareness - before)
}

func (o *Orchestrator) awarenessChanged(delta float64) {
	if o.hooks.OnAwareness != nil {
		o.hooks.OnAwareness(o.ctx, o.sessionEvent(domain.EventAwareness, delta))
	}
	o.publish()
}

// selectPersona picks a random persona other than the current one, falling
// back to the first configured persona.
func (o *Orchestrator) selectPersona() *domain.Persona {
	personas := o.catalog.Personas
	var current string
	if o.session.Persona != nil {
		current = o.session.Persona.ID
	}

	candidates := make([]domain.Persona, 0, len(personas))
	for _, p := range personas {
		if p.ID != current {
			candidates = append(candidates, p)
		}
	}

	var picked *domain.Persona
	switch {
	case len(candidates) > 0:
		p := candidates[o.rng.IntN(len(candidates))]
		picked = &p
	case len(personas) > 0:
		p := personas[0]
		picked = &p
	}

	o.session.Persona = picked
	if picked == nil {
		o.logger.Warn("No personas configured")
	} else {
		o.logger.Info("Selected persona", "persona", picked.ID)
	}
	o.publish()
	return picked
}

func (o *Orchestrator) recordGridEvent(kind domain.GridEventKind, length int, board *domain.Board) {
	if o.hooks.OnGridEvent == nil {
		return
	}
	ev := &domain.GridEvent{
		EventBase: o.eventBase(domain.EventGrid),
		Kind:      kind,
		Length:    length,
	}
	if board != nil {
		ev.TickInterval = board.TickInterval
	}
	o.hooks.OnGridEvent(o.ctx, ev)
}
