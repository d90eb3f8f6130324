package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSimulationStart EventType = "simulation_start"
	EventSimulationEnd   EventType = "simulation_end"
	EventDefinitionLoad  EventType = "definition_load"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// SimulationEvent is emitted around each evaluation of an input.
// Verdict and Duration are only populated on EventSimulationEnd.
type SimulationEvent struct {
	EventBase
	InputLength int           `json:"input_length"`
	Verdict     *Verdict      `json:"verdict,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// LoadEvent is emitted when a definition is compiled into the engine cache.
type LoadEvent struct {
	EventBase
	States int  `json:"states"`
	IsDFA  bool `json:"is_dfa"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSimulationStart func(context.Context, *SimulationEvent)
	OnSimulationEnd   func(context.Context, *SimulationEvent)
	OnDefinitionLoad  func(context.Context, *LoadEvent)
}
