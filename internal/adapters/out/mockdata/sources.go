package mockdata

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"restaurantops/internal/adapters/out/memory"
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/services"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Source is the transition log tag of mock mode writes.
const Source = "mock"

var (
	_ ports.OrderSource       = (*Mock)(nil)
	_ ports.DeliverySource    = (*Mock)(nil)
	_ ports.ReservationSource = (*Mock)(nil)
)

// Config tunes the mock sources. Zero values select defaults.
type Config struct {
	Clock    kernel.Clock
	TaxRate  decimal.Decimal
	Observer ports.TransitionObserver
	Logger   *slog.Logger
}

// Mock serves every source contract from in-memory stores seeded with a
// dataset. Writes change the stores for the lifetime of the process only.
type Mock struct {
	orders       ports.Store[order.Order]
	deliveries   ports.Store[delivery.Assignment]
	persons      ports.Store[delivery.Person]
	reservations ports.Store[reservation.Reservation]
	tables       []reservation.Table

	taxRate    decimal.Decimal
	dispatcher services.DeliveryMatcher
	booking    services.ReservationMatcher
	aggregator services.MetricsAggregator
}

// NewMock seeds the mock stores with ds.
//
// Returns a ValueIsInvalidError (joined) when an entity of ds breaks its
// invariants.
func NewMock(ds Dataset, cfg Config) (*Mock, error) {
	if cfg.Clock == nil {
		cfg.Clock = kernel.SystemClock
	}
	if cfg.TaxRate.IsZero() {
		cfg.TaxRate = kernel.DefaultTaxRate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := []memory.Option{memory.WithClock(cfg.Clock), memory.WithLogger(cfg.Logger)}
	if cfg.Observer != nil {
		opts = append(opts, memory.WithObserver(cfg.Observer, Source))
	}

	m := &Mock{
		orders:       memory.NewStore[order.Order](order.Flow, opts...),
		deliveries:   memory.NewStore[delivery.Assignment](delivery.Flow, opts...),
		persons:      memory.NewStore[delivery.Person](delivery.PersonFlow, opts...),
		reservations: memory.NewStore[reservation.Reservation](reservation.Flow, opts...),
		tables:       append([]reservation.Table(nil), ds.Tables...),
		taxRate:      cfg.TaxRate,
		dispatcher:   services.NewDeliveryMatcher(cfg.Clock),
		booking:      services.NewReservationMatcher(),
		aggregator:   services.NewMetricsAggregator(),
	}

	if err := errors.Join(
		m.orders.Replace(ds.Orders),
		m.deliveries.Replace(ds.Deliveries),
		m.persons.Replace(ds.Persons),
		m.reservations.Replace(ds.Reservations),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// Tables returns the table pool used to check approvals.
func (m *Mock) Tables() []reservation.Table {
	return append([]reservation.Table(nil), m.tables...)
}

// ListOrders returns the orders matching filter.
func (m *Mock) ListOrders(_ context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	return m.orders.List(func(o order.Order) bool {
		return (filter.CustomerID == "" || o.CustomerID == filter.CustomerID) &&
			(filter.Status == "" || o.Status == filter.Status)
	}), nil
}

// GetOrder returns order id.
func (m *Mock) GetOrder(_ context.Context, id string) (order.Order, error) {
	return m.orders.Get(id)
}

// CreateOrder recomputes the draft's totals with the configured tax rate and
// stores it as PENDING.
func (m *Mock) CreateOrder(ctx context.Context, draft order.Order) (order.Order, error) {
	draft.Recalculate(m.taxRate)
	return m.orders.Create(ctx, draft)
}

// UpdateOrderStatus moves order id to status.
func (m *Mock) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	return m.orders.Transition(ctx, id, status)
}

// DeleteOrder removes order id.
func (m *Mock) DeleteOrder(_ context.Context, id string) error {
	return m.orders.Delete(id)
}

// ListPersons returns every delivery person.
func (m *Mock) ListPersons(_ context.Context) ([]delivery.Person, error) {
	return m.persons.List(nil), nil
}

// UpdatePersonStatus changes the availability of person id.
func (m *Mock) UpdatePersonStatus(
	ctx context.Context,
	id string,
	status delivery.PersonStatus,
) (delivery.Person, error) {
	return m.persons.Transition(ctx, id, status)
}

// ListAssignments returns the assignments matching filter. Search is a case
// insensitive substring match.
func (m *Mock) ListAssignments(_ context.Context, filter ports.DeliveryFilter) ([]delivery.Assignment, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return m.deliveries.List(func(a delivery.Assignment) bool {
		if filter.Status != "" && a.Status != filter.Status {
			return false
		}
		if filter.Priority != "" && a.Priority != filter.Priority {
			return false
		}
		if filter.DeliveryPersonID != "" && (!a.HasPerson() || *a.DeliveryPersonID != filter.DeliveryPersonID) {
			return false
		}
		return search == "" || matches(search, a.CustomerName, a.DeliveryAddress, a.OrderID, a.Notes)
	}), nil
}

// CreateAssignment stores draft in preparing.
func (m *Mock) CreateAssignment(ctx context.Context, draft delivery.Assignment) (delivery.Assignment, error) {
	return m.deliveries.Create(ctx, draft)
}

// UpdateAssignmentStatus moves assignment id to status. Moving to assigned
// this way requires the assignment to already reference a person; use
// Assign to pick one.
func (m *Mock) UpdateAssignmentStatus(
	ctx context.Context,
	id string,
	status delivery.Status,
) (delivery.Assignment, error) {
	return m.deliveries.Transition(ctx, id, status)
}

// Assign puts a person on assignment id.
func (m *Mock) Assign(ctx context.Context, id string, req delivery.AssignRequest) (delivery.Assignment, error) {
	return m.dispatcher.Assign(ctx, m.deliveries, id, m.persons.List(nil), req)
}

// Progress moves assignment id one step along the happy path. When the next
// step is assigned and no person is referenced yet, the best eligible person
// is picked.
func (m *Mock) Progress(ctx context.Context, id string) (delivery.Assignment, error) {
	current, err := m.deliveries.Get(id)
	if err != nil {
		return delivery.Assignment{}, err
	}

	next, ok, err := services.Transitions.NextStep(workflow.KindDelivery, current.Status)
	if err != nil {
		return delivery.Assignment{}, err
	}
	if !ok {
		return delivery.Assignment{}, errs.NewInvalidTransitionErrorWithCause(string(workflow.KindDelivery),
			string(current.Status), "", errors.New("no next step from a terminal status"))
	}

	if next == delivery.Assigned && !current.HasPerson() {
		return m.Assign(ctx, id, delivery.NewAssignRequest("", nil, ""))
	}
	return m.deliveries.Transition(ctx, id, next)
}

// Metrics aggregates the current mock deliveries and persons.
func (m *Mock) Metrics(_ context.Context) (delivery.Metrics, error) {
	return m.aggregator.Compute(m.deliveries.List(nil), m.persons.List(nil)), nil
}

// ListReservations returns the reservations matching filter. Dates bound the
// reservation time inclusively; the customer name matches as a case
// insensitive substring.
func (m *Mock) ListReservations(
	_ context.Context,
	filter ports.ReservationFilter,
) ([]reservation.Reservation, error) {
	name := strings.ToLower(strings.TrimSpace(filter.CustomerName))
	return m.reservations.List(func(r reservation.Reservation) bool {
		if filter.Status != "" && r.Status != filter.Status {
			return false
		}
		if filter.StartDate != nil && r.ReservationTime.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && r.ReservationTime.After(*filter.EndDate) {
			return false
		}
		return name == "" || matches(name, r.CustomerName)
	}), nil
}

// ListPending returns the reservations awaiting a decision.
func (m *Mock) ListPending(ctx context.Context) ([]reservation.Reservation, error) {
	return m.ListReservations(ctx, ports.ReservationFilter{Status: reservation.Pending})
}

// GetReservation returns reservation id.
func (m *Mock) GetReservation(_ context.Context, id string) (reservation.Reservation, error) {
	return m.reservations.Get(id)
}

// CreateReservation stores draft as PENDING.
func (m *Mock) CreateReservation(
	ctx context.Context,
	draft reservation.Reservation,
) (reservation.Reservation, error) {
	return m.reservations.Create(ctx, draft)
}

// Approve confirms reservation id against the mock table pool.
func (m *Mock) Approve(
	ctx context.Context,
	id string,
	approval reservation.Approval,
) (reservation.Reservation, error) {
	return m.booking.Approve(ctx, m.reservations, id, approval, m.tables)
}

// Deny rejects reservation id.
func (m *Mock) Deny(ctx context.Context, id, reason, approverID string) (reservation.Reservation, error) {
	return m.booking.Deny(ctx, m.reservations, id, reason, approverID)
}

// UpdateReservationStatus moves reservation id to status. CONFIRMED and DENIED
// carry extra data and go through Approve and Deny.
func (m *Mock) UpdateReservationStatus(
	ctx context.Context,
	id string,
	status reservation.Status,
) (reservation.Reservation, error) {
	return m.reservations.Transition(ctx, id, status)
}

// DeleteReservation removes reservation id.
func (m *Mock) DeleteReservation(_ context.Context, id string) error {
	return m.reservations.Delete(id)
}

func matches(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
