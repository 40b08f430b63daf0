package order

import (
	"restaurantops/internal/core/domain/workflow"
)

// Status is the lifecycle state of an order as it appears on the wire.
type Status = workflow.State

const (
	// Pending is the initial status of a submitted order.
	Pending Status = "PENDING"

	// Confirmed means the restaurant accepted the order.
	Confirmed Status = "CONFIRMED"

	// Preparing means the kitchen is working on the order.
	Preparing Status = "PREPARING"

	// Ready means the order is waiting to be served, picked up or dispatched.
	Ready Status = "READY"

	// Completed is terminal: the order was handed over.
	Completed Status = "COMPLETED"

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled Status = "CANCELLED"
)

// Flow is the order transition table.
var Flow = workflow.MustNewTable(workflow.Definition{
	Kind:      workflow.KindOrder,
	Canonical: []Status{Pending, Confirmed, Preparing, Ready, Completed},
	Escapes:   []Status{Cancelled},
	Terminal:  []Status{Completed, Cancelled},
	Initial:   Pending,
})

// Type is the fulfilment channel of an order.
type Type string

const (
	DineIn   Type = "dine_in"
	Takeout  Type = "takeout"
	Delivery Type = "delivery"
)

// Validate checks the order type is one of the known channels.
func (t Type) Validate() error {
	switch t {
	case DineIn, Takeout, Delivery:
		return nil
	default:
		return errInvalidType(t)
	}
}
