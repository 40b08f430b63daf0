package delivery

import (
	"fmt"

	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
type Status = workflow.State

const (
	Pending        Status = "pending"
	Preparing      Status = "preparing"
	ReadyForPickup Status = "ready_for_pickup"
	Assigned       Status = "assigned"
	PickedUp       Status = "picked_up"
	InTransit      Status = "in_transit"
	Delivered      Status = "delivered"
	Cancelled      Status = "cancelled"
)

// Flow is the delivery assignment transition table. New assignments start in
// preparing; pending is only ever loaded from the backend or the mock dataset.
var Flow = workflow.MustNewTable(workflow.Definition{
	Kind:      workflow.KindDelivery,
	Canonical: []Status{Pending, Preparing, ReadyForPickup, Assigned, PickedUp, InTransit, Delivered},
	Extra: []workflow.Edge{
		{From: Pending, To: Assigned},
		{From: Preparing, To: Assigned},
	},
	Escapes:  []Status{Cancelled},
	Terminal: []Status{Delivered, Cancelled},
	Initial:  Preparing,
})

// RequiresPerson reports whether an assignment in status must reference a
// delivery person, i.e. status comes after ready_for_pickup on the happy path.
func RequiresPerson(status Status) bool {
	return Flow.Position(status) > Flow.Position(ReadyForPickup)
}

// IsPending reports whether status counts as waiting for a courier in metrics.
func IsPending(status Status) bool {
	return status == ReadyForPickup || status == Assigned
}

// Priority orders assignments in the dispatch queue.
type Priority string

const (
	Low    Priority = "low"
	Normal Priority = "normal"
	High   Priority = "high"
	Urgent Priority = "urgent"
)

// Validate checks p is a known priority.
func (p Priority) Validate() error {
	switch p {
	case Low, Normal, High, Urgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", p))
	}
}

// PersonStatus is the availability of a delivery person.
type PersonStatus = workflow.State

const (
	Available PersonStatus = "available"
	Busy      PersonStatus = "busy"
	Offline   PersonStatus = "offline"
)

// PersonFlow allows any move between the three availability states.
var PersonFlow = workflow.MustNewTable(workflow.Definition{
	Kind: workflow.KindPerson,
	Extra: []workflow.Edge{
		{From: Available, To: Busy},
		{From: Available, To: Offline},
		{From: Busy, To: Available},
		{From: Busy, To: Offline},
		{From: Offline, To: Available},
		{From: Offline, To: Busy},
	},
	Initial: Available,
})

// VehicleType is how a delivery person travels.
type VehicleType string

const (
	Bicycle    VehicleType = "bicycle"
	Motorcycle VehicleType = "motorcycle"
	Car        VehicleType = "car"
	Scooter    VehicleType = "scooter"
)

// Validate checks v is a known vehicle type.
func (v VehicleType) Validate() error {
	switch v {
	case Bicycle, Motorcycle, Car, Scooter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", v))
	}
}
