package delivery

import (
	"errors"
	"fmt"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"
)

// Assignment is the dispatch record for one delivery order.
//
// DeliveryPersonID stays nil until a person is assigned. Timestamps are stamped
// by Enter as the assignment moves through Flow:
//   - AssignedAt when entering assigned
//   - PickedUpAt when entering picked_up
//   - ActualDeliveryTime when entering delivered
type Assignment struct {
	ID                    string     `json:"id"`
	OrderID               string     `json:"orderId"`
	DeliveryPersonID      *string    `json:"deliveryPersonId"`
	Status                Status     `json:"status"`
	Priority              Priority   `json:"priority"`
	CustomerName          string     `json:"customerName,omitempty"`
	CustomerPhone         string     `json:"customerPhone,omitempty"`
	DeliveryAddress       string     `json:"deliveryAddress,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	AssignedAt            *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt            *time.Time `json:"pickedUpAt,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// NewAssignment builds an assignment draft for an order. Priority defaults
// to normal when empty.
//
// Parameters:
//   - orderID: the order being delivered (required)
//   - priority: low, normal, high or urgent
//   - customerName, deliveryAddress: display data for the dispatcher
//
// Returns:
//   - Assignment: a draft without identifier, ready for a store Create
//   - error: joined validation errors
func NewAssignment(orderID string, priority Priority, customerName, deliveryAddress, notes string) (Assignment, error) {
	if priority == "" {
		priority = Normal
	}
	if err := errors.Join(kernel.ValidateID("orderId", orderID), priority.Validate()); err != nil {
		return Assignment{}, err
	}
	return Assignment{
		OrderID:         orderID,
		Priority:        priority,
		CustomerName:    customerName,
		DeliveryAddress: deliveryAddress,
		Notes:           notes,
	}, nil
}

// Key returns the assignment identifier.
func (a *Assignment) Key() string {
	return a.ID
}

// State returns the current status.
func (a *Assignment) State() workflow.State {
	return a.Status
}

// Init assigns identity and the initial status to a draft.
func (a *Assignment) Init(id string, now time.Time) {
	a.ID = id
	a.Status = Flow.Initial()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.AssignedAt = nil
	a.PickedUpAt = nil
	a.ActualDeliveryTime = nil
}

// Enter moves the assignment to status and stamps the timestamp belonging to
// it. The caller has already checked the edge against Flow.
func (a *Assignment) Enter(status Status, now time.Time) {
	a.Status = status
	a.UpdatedAt = now
	switch status {
	case Assigned:
		a.AssignedAt = kernel.TimePtr(now)
	case PickedUp:
		a.PickedUpAt = kernel.TimePtr(now)
	case Delivered:
		a.ActualDeliveryTime = kernel.TimePtr(now)
	}
}

// HasPerson reports whether a delivery person is referenced.
func (a *Assignment) HasPerson() bool {
	return a.DeliveryPersonID != nil && *a.DeliveryPersonID != ""
}

// IsOnTime reports whether a delivered assignment arrived no later than its
// estimate. Assignments without both timestamps are not on time.
func (a *Assignment) IsOnTime() bool {
	if a.ActualDeliveryTime == nil || a.EstimatedDeliveryTime == nil {
		return false
	}
	return !a.ActualDeliveryTime.After(*a.EstimatedDeliveryTime)
}

// Validate checks the assignment invariants.
//
// Returns:
//   - nil if the assignment is consistent
//   - joined errors describing every violated invariant
func (a *Assignment) Validate() error {
	if a == nil {
		return errs.NewValueIsRequiredError("assignment")
	}

	var delivered, person error
	if (a.ActualDeliveryTime != nil) != (a.Status == Delivered) {
		delivered = errs.NewValueIsInvalidErrorWithCause("actualDeliveryTime",
			fmt.Errorf("must be set if and only if status is %s, status is %s", Delivered, a.Status))
	}
	if RequiresPerson(a.Status) && !a.HasPerson() {
		person = errs.NewValueIsRequiredErrorWithCause("deliveryPersonId",
			fmt.Errorf("status %s requires a delivery person", a.Status))
	}

	return errors.Join(
		kernel.ValidateID("id", a.ID),
		kernel.ValidateID("orderId", a.OrderID),
		Flow.Validate(a.Status),
		a.Priority.Validate(),
		delivered,
		person,
	)
}

// Clone returns a deep copy of the assignment.
func (a *Assignment) Clone() *Assignment {
	cp := *a
	cp.DeliveryPersonID = kernel.ClonePtr(a.DeliveryPersonID)
	cp.EstimatedDeliveryTime = kernel.ClonePtr(a.EstimatedDeliveryTime)
	cp.AssignedAt = kernel.ClonePtr(a.AssignedAt)
	cp.PickedUpAt = kernel.ClonePtr(a.PickedUpAt)
	cp.ActualDeliveryTime = kernel.ClonePtr(a.ActualDeliveryTime)
	return &cp
}
