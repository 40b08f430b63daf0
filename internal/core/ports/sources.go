package ports

import (
	"context"
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
)

// HealthProbe checks whether the live backend answers.
type HealthProbe interface {
	// Health returns nil when the backend answered with a 2xx status.
	Health(ctx context.Context) error
}

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	CustomerID string
	Status     order.Status
}

// OrderSource is the order data contract. It has a live implementation over
// the backend and a mock implementation over the synthetic dataset.
type OrderSource interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]order.Order, error)
	GetOrder(ctx context.Context, id string) (order.Order, error)
	CreateOrder(ctx context.Context, draft order.Order) (order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// DeliveryFilter narrows ListAssignments. Zero fields do not filter.
// Search matches the customer name, address, order id or notes.
type DeliveryFilter struct {
	Status           delivery.Status
	DeliveryPersonID string
	Priority         delivery.Priority
	Search           string
}

// DeliverySource is the dispatch data contract.
type DeliverySource interface {
	ListPersons(ctx context.Context) ([]delivery.Person, error)
	UpdatePersonStatus(ctx context.Context, id string, status delivery.PersonStatus) (delivery.Person, error)
	ListAssignments(ctx context.Context, filter DeliveryFilter) ([]delivery.Assignment, error)
	CreateAssignment(ctx context.Context, draft delivery.Assignment) (delivery.Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status delivery.Status) (delivery.Assignment, error)
	Assign(ctx context.Context, id string, req delivery.AssignRequest) (delivery.Assignment, error)
	Progress(ctx context.Context, id string) (delivery.Assignment, error)
	Metrics(ctx context.Context) (delivery.Metrics, error)
}

// ReservationFilter narrows ListReservations. Zero fields do not filter.
// StartDate and EndDate bound the reservation time inclusively.
type ReservationFilter struct {
	Status       reservation.Status
	StartDate    *time.Time
	EndDate      *time.Time
	CustomerName string
}

// ReservationSource is the reservation data contract.
type ReservationSource interface {
	ListReservations(ctx context.Context, filter ReservationFilter) ([]reservation.Reservation, error)
	ListPending(ctx context.Context) ([]reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (reservation.Reservation, error)
	CreateReservation(ctx context.Context, draft reservation.Reservation) (reservation.Reservation, error)
	Approve(ctx context.Context, id string, approval reservation.Approval) (reservation.Reservation, error)
	Deny(ctx context.Context, id, reason, approverID string) (reservation.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status reservation.Status) (reservation.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}
