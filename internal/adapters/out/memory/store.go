// Package memory implements ports.Store as a mutex-serialized in-memory
// collection. Stores are constructed at session start and hold their entities
// for the lifetime of the process only.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

// Record is the behavior a stored entity must provide through its pointer type.
type Record[T any] interface {
	*T
	Key() string
	State() workflow.State
	Init(id string, now time.Time)
	Enter(state workflow.State, now time.Time)
	Validate() error
	Clone() *T
}

// Store holds entities of one kind keyed by identifier, in insertion order.
// All reads and writes are serialized by one mutex; a transition's check and
// write happen under the same lock hold.
type Store[T any, P Record[T]] struct {
	mu       sync.RWMutex
	table    *workflow.Table
	items    map[string]*T
	order    []string
	clock    kernel.Clock
	newID    func() string
	observer ports.TransitionObserver
	source   string
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	clock    kernel.Clock
	newID    func() string
	observer ports.TransitionObserver
	source   string
	logger   *slog.Logger
}

// WithClock sets the time source used for stamps. Defaults to kernel.SystemClock.
func WithClock(clock kernel.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDGenerator sets the identifier generator. Defaults to kernel.NewID.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithObserver reports every committed transition to observer.
// source tags the records, e.g. "mock".
func WithObserver(observer ports.TransitionObserver, source string) Option {
	return func(o *options) {
		o.observer = observer
		o.source = source
	}
}

// WithLogger sets the logger used for observer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewStore creates an empty store governed by table.
//
// Example:
//
//	deliveries := memory.NewStore[delivery.Assignment](delivery.Flow, memory.WithClock(clock))
func NewStore[T any, P Record[T]](table *workflow.Table, opts ...Option) *Store[T, P] {
	o := options{
		clock:  kernel.SystemClock,
		newID:  kernel.NewID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T, P]{
		table:    table,
		items:    make(map[string]*T),
		clock:    o.clock,
		newID:    o.newID,
		observer: o.observer,
		source:   o.source,
		logger:   o.logger.With("component", "memory-store", "kind", string(table.Kind())),
	}
}

// Kind returns the entity kind of the store's table.
func (s *Store[T, P]) Kind() workflow.Kind {
	return s.table.Kind()
}

// Create assigns an identifier and the initial state to draft and stores it.
func (s *Store[T, P]) Create(_ context.Context, draft T) (T, error) {
	entity := P(&draft).Clone()
	P(entity).Init(s.newID(), s.clock())

	if err := P(entity).Validate(); err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := P(entity).Key()
	if _, exists := s.items[id]; exists {
		var zero T
		return zero, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%s already exists", id))
	}
	s.items[id] = entity
	s.order = append(s.order, id)

	return *P(entity).Clone(), nil
}

// Get returns a copy of the entity with id.
func (s *Store[T, P]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.items[id]
	if !ok {
		var zero T
		return zero, errs.NewObjectNotFoundError(string(s.table.Kind())+"Id", id)
	}
	return *P(entity).Clone(), nil
}

// List returns copies of the entities matching keep, in insertion order.
func (s *Store[T, P]) List(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		entity := *P(s.items[id]).Clone()
		if keep == nil || keep(entity) {
			out = append(out, entity)
		}
	}
	return out
}

// Transition moves the entity with id to target. See ports.Store.
func (s *Store[T, P]) Transition(
	ctx context.Context,
	id string,
	target workflow.State,
	effects ...ports.Effect[T],
) (T, error) {
	var zero T

	record, result, err := s.transition(id, target, effects)
	if err != nil {
		return zero, err
	}

	if record != nil && s.observer != nil {
		if err := s.observer.Observe(ctx, *record); err != nil {
			s.logger.WarnContext(ctx, "failed to record transition",
				"id", id, "from", string(record.From), "to", string(record.To), "error", err)
		}
	}
	return result, nil
}

func (s *Store[T, P]) transition(
	id string,
	target workflow.State,
	effects []ports.Effect[T],
) (*ports.TransitionRecord, T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, zero, errs.NewObjectNotFoundError(string(s.table.Kind())+"Id", id)
	}

	from := P(current).State()
	if err := s.table.Check(from, target); err != nil {
		return nil, zero, err
	}
	if from == target {
		return nil, *P(current).Clone(), nil
	}

	now := s.clock()
	next := P(current).Clone()
	P(next).Enter(target, now)
	for _, effect := range effects {
		if err := effect(next); err != nil {
			return nil, zero, err
		}
	}
	if err := P(next).Validate(); err != nil {
		return nil, zero, err
	}

	s.items[id] = next

	record := &ports.TransitionRecord{
		Kind:     s.table.Kind(),
		EntityID: id,
		From:     from,
		To:       target,
		Source:   s.source,
		At:       now,
	}
	return record, *P(next).Clone(), nil
}

// Delete removes the entity with id.
func (s *Store[T, P]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return errs.NewObjectNotFoundError(string(s.table.Kind())+"Id", id)
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return nil
}

// Put validates and upserts entity without transition checks.
func (s *Store[T, P]) Put(entity T) (T, error) {
	cp := P(&entity).Clone()
	if err := P(cp).Validate(); err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := P(cp).Key()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = cp
	return *P(cp).Clone(), nil
}

// Replace validates every entity and swaps the whole collection. Nothing
// changes when any entity is invalid.
func (s *Store[T, P]) Replace(entities []T) error {
	items := make(map[string]*T, len(entities))
	order := make([]string, 0, len(entities))
	for i := range entities {
		cp := P(&entities[i]).Clone()
		if err := P(cp).Validate(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		id := P(cp).Key()
		if _, dup := items[id]; !dup {
			order = append(order, id)
		}
		items[id] = cp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
	s.order = order
	return nil
}

// Len returns the number of stored entities.
func (s *Store[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
