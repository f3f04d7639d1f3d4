package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_enter", "stage", e.StageID)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_leave", "stage", e.StageID)
		},
		OnScore: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "score", "stage", e.StageID, "gained", e.Delta, "score", e.Score)
		},
		OnAwareness: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "awareness", "stage", e.StageID, "delta", e.Delta, "awareness", e.Awareness)
		},
		OnGridEvent: func(ctx context.Context, e *domain.GridEvent) {
			logger.DebugContext(ctx, "grid_event", "kind", e.Kind, "length", e.Length, "tick", e.TickInterval)
		},
	}
}

// Chain merges several hook sets; each callback runs in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		out.OnStageEnter = chain(out.OnStageEnter, s.OnStageEnter)
		out.OnStageLeave = chain(out.OnStageLeave, s.OnStageLeave)
		out.OnScore = chain(out.OnScore, s.OnScore)
		out.OnAwareness = chain(out.OnAwareness, s.OnAwareness)
		out.OnGridEvent = chain(out.OnGridEvent, s.OnGridEvent)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
