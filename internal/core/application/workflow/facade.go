package workflow

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/services"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Sources binds the live and mock implementation of every source contract.
type Sources struct {
	Orders       datasource.Binding[ports.OrderSource]
	Deliveries   datasource.Binding[ports.DeliverySource]
	Reservations datasource.Binding[ports.ReservationSource]
}

// Config holds the optional collaborators of a Facade.
type Config struct {
	// Log records live mode transitions and answers History. Mock stores
	// report their own transitions to the same log.
	Log     ports.TransitionLog
	Clock   kernel.Clock
	TaxRate decimal.Decimal
	Logger  *slog.Logger
}

type slot[T any] struct {
	inflight int
	err      *ErrorView
	data     T
}

// Facade orchestrates loads and mutations across the data sources and keeps
// the per-domain views. It is safe for concurrent use.
type Facade struct {
	gateway    *datasource.Gateway
	sources    Sources
	log        ports.TransitionLog
	clock      kernel.Clock
	taxRate    decimal.Decimal
	dispatcher services.DeliveryMatcher
	booking    services.ReservationMatcher
	logger     *slog.Logger

	mu           sync.Mutex
	orders       slot[[]order.Order]
	deliveries   slot[[]delivery.Assignment]
	persons      slot[[]delivery.Person]
	reservations slot[[]reservation.Reservation]
	metrics      slot[delivery.Metrics]
}

// NewFacade creates a facade over gateway and sources.
func NewFacade(gateway *datasource.Gateway, sources Sources, cfg Config) *Facade {
	if cfg.Clock == nil {
		cfg.Clock = kernel.SystemClock
	}
	if cfg.TaxRate.IsZero() {
		cfg.TaxRate = kernel.DefaultTaxRate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Facade{
		gateway:    gateway,
		sources:    sources,
		log:        cfg.Log,
		clock:      cfg.Clock,
		taxRate:    cfg.TaxRate,
		dispatcher: services.NewDeliveryMatcher(cfg.Clock),
		booking:    services.NewReservationMatcher(),
		logger:     cfg.Logger.With("component", "workflow_facade"),
	}
}

// Connected reports whether the gateway serves live data.
func (f *Facade) Connected() bool {
	return f.gateway.Connected()
}

// Snapshot returns copies of every view.
func (f *Facade) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		Mode:         f.gateway.Mode(),
		Orders:       viewOf(&f.orders, slices.Clone[[]order.Order]),
		Deliveries:   viewOf(&f.deliveries, slices.Clone[[]delivery.Assignment]),
		Persons:      viewOf(&f.persons, slices.Clone[[]delivery.Person]),
		Reservations: viewOf(&f.reservations, slices.Clone[[]reservation.Reservation]),
		Metrics:      viewOf(&f.metrics, func(m delivery.Metrics) delivery.Metrics { return m }),
	}
}

// History returns the logged transitions of one entity, oldest first.
// Without a log the history is empty.
func (f *Facade) History(ctx context.Context, kind domain.Kind, id string) ([]ports.TransitionRecord, error) {
	if _, err := services.Transitions.Table(kind); err != nil {
		return nil, err
	}
	if f.log == nil {
		return []ports.TransitionRecord{}, nil
	}
	return f.log.History(ctx, kind, id)
}

func viewOf[T any](s *slot[T], clone func(T) T) View[T] {
	v := View[T]{Loading: s.inflight > 0, Data: clone(s.data)}
	if s.err != nil {
		e := *s.err
		e.Suggestions = slices.Clone(s.err.Suggestions)
		v.Error = &e
	}
	return v
}

// track runs call as one operation of the view held by s. While call runs the
// view is loading; afterwards the error is set or cleared and apply merges a
// successful result into the cached data.
func track[T, R any](f *Facade, s *slot[T], call func() (R, error), apply func(data T, result R) T) (R, error) {
	f.mu.Lock()
	s.inflight++
	f.mu.Unlock()

	result, err := call()

	f.mu.Lock()
	defer f.mu.Unlock()
	s.inflight--
	if err != nil {
		s.err = Describe(err)
		return result, err
	}
	s.err = nil
	if apply != nil {
		s.data = apply(s.data, result)
	}
	return result, nil
}

// cached returns the cached entity with id, if any.
func cached[T any](f *Facade, s *slot[[]T], id string, key func(T) string) (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range s.data {
		if key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// fail records a preflight failure on the view held by s.
func fail[T any](f *Facade, s *slot[T], err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.err = Describe(err)
	return err
}

func replace[T any](_ []T, loaded []T) []T {
	return slices.Clone(loaded)
}

func upsert[T any](key func(T) string) func([]T, T) []T {
	return func(list []T, item T) []T {
		id := key(item)
		for i := range list {
			if key(list[i]) == id {
				out := slices.Clone(list)
				out[i] = item
				return out
			}
		}
		return append(slices.Clone(list), item)
	}
}

func remove[T any](key func(T) string, id string) func([]T, struct{}) []T {
	return func(list []T, _ struct{}) []T {
		return slices.DeleteFunc(slices.Clone(list), func(item T) bool { return key(item) == id })
	}
}

// record logs a transition served by the live backend. Mock stores log their
// own transitions.
func (f *Facade) record(ctx context.Context, served string, kind domain.Kind, id string, from, to domain.State) {
	if f.log == nil || served != datasource.ModeLive || from == to {
		return
	}
	err := f.log.Observe(ctx, ports.TransitionRecord{
		Kind:     kind,
		EntityID: id,
		From:     from,
		To:       to,
		Source:   datasource.ModeLive,
		At:       f.clock(),
	})
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to record transition", "kind", kind, "id", id, "error", err)
	}
}

// checkCached validates a status change against the cached entity state.
// Unknown targets are always rejected; the edge is only checked when the
// entity is cached.
func checkCached(kind domain.Kind, current domain.State, known bool, target domain.State) error {
	table, err := services.Transitions.Table(kind)
	if err != nil {
		return err
	}
	if err = table.Validate(target); err != nil {
		return err
	}
	if !known || current == target {
		return nil
	}
	return table.Check(current, target)
}

func orderKey(o order.Order) string { return o.ID }
func deliveryKey(a delivery.Assignment) string { return a.ID }
func personKey(p delivery.Person) string { return p.ID }
func reservationKey(r reservation.Reservation) string { return r.ID }
