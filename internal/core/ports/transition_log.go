package ports

import (
	"context"
	"time"

	"restaurantops/internal/core/domain/workflow"
)

// TransitionRecord describes one committed state change.
type TransitionRecord struct {
	Kind     workflow.Kind  `json:"kind"`
	EntityID string         `json:"entityId"`
	From     workflow.State `json:"from"`
	To       workflow.State `json:"to"`
	Source   string         `json:"source"`
	At       time.Time      `json:"at"`
}

// TransitionObserver is notified after a store commits a transition.
// Observers must not call back into the store that notified them.
type TransitionObserver interface {
	Observe(ctx context.Context, record TransitionRecord) error
}

// TransitionLog is the queryable audit trail of committed transitions.
type TransitionLog interface {
	TransitionObserver

	// History returns the transitions of one entity, oldest first.
	History(ctx context.Context, kind workflow.Kind, entityID string) ([]TransitionRecord, error)
}
