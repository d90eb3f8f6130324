package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/nfasim/pkg/domain"
)

// LogHooks returns hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSimulationEnd: func(ctx context.Context, e *domain.SimulationEvent) {
			if e.Verdict == nil {
				return
			}
			logger.InfoContext(ctx, "simulation",
				"automaton", e.Automaton,
				"input_len", e.InputLength,
				"result", Result(*e.Verdict),
				"max_copies", e.Verdict.MaxCopies,
				"duration", e.Duration,
			)
		},
		OnDefinitionLoad: func(ctx context.Context, e *domain.LoadEvent) {
			logger.InfoContext(ctx, "definition_load",
				"automaton", e.Automaton,
				"states", e.States,
				"dfa", e.IsDFA,
			)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var combined domain.LifecycleHooks

	var starts, ends []func(context.Context, *domain.SimulationEvent)
	var loads []func(context.Context, *domain.LoadEvent)
	for _, h := range all {
		if h.OnSimulationStart != nil {
			starts = append(starts, h.OnSimulationStart)
		}
		if h.OnSimulationEnd != nil {
			ends = append(ends, h.OnSimulationEnd)
		}
		if h.OnDefinitionLoad != nil {
			loads = append(loads, h.OnDefinitionLoad)
		}
	}

	if len(starts) > 0 {
		combined.OnSimulationStart = func(ctx context.Context, e *domain.SimulationEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(ends) > 0 {
		combined.OnSimulationEnd = func(ctx context.Context, e *domain.SimulationEvent) {
			for _, fn := range ends {
				fn(ctx, e)
			}
		}
	}
	if len(loads) > 0 {
		combined.OnDefinitionLoad = func(ctx context.Context, e *domain.LoadEvent) {
			for _, fn := range loads {
				fn(ctx, e)
			}
		}
	}
	return combined
}
