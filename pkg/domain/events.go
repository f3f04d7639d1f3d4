package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
	EventScore      EventType = "score"
	EventAwareness  EventType = "awareness"
	EventGrid       EventType = "grid"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StageEvent represents entry or exit from a stage.
type StageEvent struct {
	EventBase
	StageID StageID `json:"stage_id"`
}

// SessionEvent represents a score or awareness mutation.
type SessionEvent struct {
	EventBase
	StageID   StageID `json:"stage_id"`
	Delta     float64 `json:"delta"`
	Score     int     `json:"score"`
	Awareness float64 `json:"awareness"`
}

// GridEventKind names the simulation outcomes worth observing.
type GridEventKind string

const (
	GridPickupPreferred GridEventKind = "pickup_preferred"
	GridPickupNeutral   GridEventKind = "pickup_neutral"
	GridWallHit         GridEventKind = "wall_hit"
	GridSelfHit         GridEventKind = "self_hit"
	GridGameOver        GridEventKind = "game_over"
)

// GridEvent represents a notable tick of the grid minigame.
type GridEvent struct {
	EventBase
	Kind         GridEventKind `json:"kind"`
	Length       int           `json:"length"`
	TickInterval time.Duration `json:"tick_interval"`
}

// LifecycleHooks defines callbacks for orchestrator observability.
type LifecycleHooks struct {
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnScore      func(context.Context, *SessionEvent)
	OnAwareness  func(context.Context, *SessionEvent)
	OnGridEvent  func(context.Context, *GridEvent)
}
