// Package ports defines the contracts between the workflow core and its
// infrastructure: entity stores, backend data sources and the transition log.
// These interfaces establish dependency inversion so the matcher, gateway and
// facade can be tested against in-memory or mocked implementations.
package ports

import (
	"context"

	"restaurantops/internal/core/domain/workflow"
)

// Effect is a side effect applied to a copy of an entity while it moves to a
// new state, e.g. writing the assigned person. Returning an error aborts the
// transition and leaves the stored entity unchanged.
type Effect[T any] func(entity *T) error

// Store is the authoritative in-memory collection for one entity kind.
// Every method returns copies; callers never hold references into the store.
type Store[T any] interface {
	// Kind returns the entity kind the store holds.
	Kind() workflow.Kind

	// Create assigns an identifier and the kind's initial state to draft,
	// validates it and adds it to the store.
	Create(ctx context.Context, draft T) (T, error)

	// Get returns the entity with id, or an ObjectNotFoundError.
	Get(id string) (T, error)

	// List returns the entities matching keep (all when keep is nil),
	// in insertion order.
	List(keep func(T) bool) []T

	// Transition checks the edge from the current state to target against the
	// kind's table, applies intrinsic stamps and effects to a copy, validates
	// the result and commits it. Moving to the current state is a no-op that
	// returns the entity unchanged without running effects.
	//
	// Errors:
	//   - ObjectNotFoundError if id is absent
	//   - InvalidTransitionError or UnknownStateError if the edge is not permitted
	//   - any error returned by an effect or by entity validation
	Transition(ctx context.Context, id string, target workflow.State, effects ...Effect[T]) (T, error)

	// Delete hard-removes the entity. It is distinct from a cancellation.
	Delete(id string) error

	// Put validates and upserts an entity as is, without transition checks.
	// Used to seed the store and to cache entities read elsewhere.
	Put(entity T) (T, error)

	// Replace validates every entity and swaps the whole collection.
	Replace(entities []T) error
}
