package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

const (
	// DefaultLeadTime is the minimum interval between now and an estimated delivery time.
	DefaultLeadTime = 30 * time.Minute

	// DefaultRounding is the boundary estimated delivery times are rounded to.
	DefaultRounding = 5 * time.Minute
)

var (
	// ErrNoEligiblePerson is returned when no person in the pool is available
	// and active, or when the requested person is not.
	ErrNoEligiblePerson = errors.New("no eligible delivery person")

	// ErrPersonNotFound is returned when a specific person is requested but is
	// absent from the pool.
	ErrPersonNotFound = errors.New("delivery person not found")
)

// DeliveryMatcher is a domain service that puts delivery persons on delivery
// assignments.
//
// Business rules:
//   - A person is eligible iff status is available and the active flag is set
//   - Without a requested person, the best eligible person is chosen: highest
//     rating first, then fewest total deliveries, then pool order
//   - Capacity is advisory: assigning decrements nothing and changes no person
//   - The estimated delivery time must be at least now + lead time and is
//     stored rounded to the rounding boundary
//   - Only deliveries that have not been assigned yet may be assigned
//
// Example usage:
//
//	matcher := services.NewDeliveryMatcher(kernel.SystemClock)
//	req := delivery.NewAssignRequest("1", nil, "")
//	assigned, err := matcher.Assign(ctx, store, "d-1", persons, req)
//	if errors.Is(err, services.ErrNoEligiblePerson) {
//	    // Person 1 is busy, offline or inactive
//	}
type DeliveryMatcher struct {
	clock    kernel.Clock
	leadTime time.Duration
	rounding time.Duration
}

// NewDeliveryMatcher creates a matcher with the default lead time and rounding.
func NewDeliveryMatcher(clock kernel.Clock) DeliveryMatcher {
	return NewDeliveryMatcherWithPolicy(clock, DefaultLeadTime, DefaultRounding)
}

// NewDeliveryMatcherWithPolicy creates a matcher with a custom lead time and
// rounding boundary. Non-positive values fall back to the defaults.
func NewDeliveryMatcherWithPolicy(clock kernel.Clock, leadTime, rounding time.Duration) DeliveryMatcher {
	if clock == nil {
		clock = kernel.SystemClock
	}
	if leadTime <= 0 {
		leadTime = DefaultLeadTime
	}
	if rounding <= 0 {
		rounding = DefaultRounding
	}
	return DeliveryMatcher{clock: clock, leadTime: leadTime, rounding: rounding}
}

// LeadTime returns the minimum interval between now and an estimated delivery time.
func (m DeliveryMatcher) LeadTime() time.Duration {
	return m.leadTime
}

// Eligible filters pool down to persons that may take a new assignment.
func (m DeliveryMatcher) Eligible(pool []delivery.Person) []delivery.Person {
	out := make([]delivery.Person, 0, len(pool))
	for i := range pool {
		if pool[i].IsEligible() {
			out = append(out, pool[i])
		}
	}
	return out
}

// Select picks the person to assign.
//
// Parameters:
//   - pool: candidate persons
//   - requestedID: a specific person id, or "" to choose the best eligible one
//
// Returns:
//   - delivery.Person: the selected person
//   - error: ErrPersonNotFound when requestedID is absent from pool,
//     ErrNoEligiblePerson when nobody eligible is left
func (m DeliveryMatcher) Select(pool []delivery.Person, requestedID string) (delivery.Person, error) {
	if requestedID != "" {
		for i := range pool {
			if pool[i].ID != requestedID {
				continue
			}
			if !pool[i].IsEligible() {
				return delivery.Person{}, fmt.Errorf("%w: %s is %s (active: %t)",
					ErrNoEligiblePerson, requestedID, pool[i].Status, pool[i].IsActive)
			}
			return pool[i], nil
		}
		return delivery.Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, requestedID)
	}

	eligible := m.Eligible(pool)
	if len(eligible) == 0 {
		return delivery.Person{}, ErrNoEligiblePerson
	}

	best := eligible[0]
	for _, p := range eligible[1:] {
		if p.Rating > best.Rating || (p.Rating == best.Rating && p.TotalDeliveries < best.TotalDeliveries) {
			best = p
		}
	}
	return best, nil
}

// EstimateDelivery validates a requested estimated delivery time against the
// lead time and rounds it to the rounding boundary.
//
// Returns:
//   - now + lead time rounded up, when requested is nil
//   - requested rounded to the nearest boundary, or up to the next boundary
//     when the nearest one would fall below now + lead time
//   - ValueIsInvalidError when requested is earlier than now + lead time
func (m DeliveryMatcher) EstimateDelivery(requested *time.Time, now time.Time) (time.Time, error) {
	earliest := now.Add(m.leadTime)
	if requested == nil {
		return ceilTime(earliest, m.rounding), nil
	}
	if requested.Before(earliest) {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryTime",
			fmt.Errorf("%s is earlier than now + %s (%s)",
				requested.Format(time.RFC3339), m.leadTime, earliest.Format(time.RFC3339)))
	}

	rounded := requested.Round(m.rounding)
	if rounded.Before(earliest) {
		rounded = ceilTime(*requested, m.rounding)
	}
	return rounded, nil
}

// Assign selects a person and moves the delivery to assigned through store,
// writing the person reference and the estimated delivery time.
//
// Errors:
//   - the request's construction error
//   - ObjectNotFoundError when the delivery is absent
//   - InvalidTransitionError when the delivery is already assigned or past it
//   - ErrPersonNotFound, ErrNoEligiblePerson from Select
//   - ValueIsInvalidError from EstimateDelivery
func (m DeliveryMatcher) Assign(
	ctx context.Context,
	store ports.Store[delivery.Assignment],
	deliveryID string,
	pool []delivery.Person,
	req delivery.AssignRequest,
) (delivery.Assignment, error) {
	if err := req.Validate(); err != nil {
		return delivery.Assignment{}, err
	}

	current, err := store.Get(deliveryID)
	if err != nil {
		return delivery.Assignment{}, err
	}
	if err = m.CheckAssignable(current); err != nil {
		return delivery.Assignment{}, err
	}

	person, err := m.Select(pool, req.PersonID())
	if err != nil {
		return delivery.Assignment{}, err
	}

	eta, err := m.EstimateDelivery(req.EstimatedDeliveryTime(), m.clock())
	if err != nil {
		return delivery.Assignment{}, err
	}

	return store.Transition(ctx, deliveryID, delivery.Assigned, func(a *delivery.Assignment) error {
		a.DeliveryPersonID = kernel.StringPtr(person.ID)
		a.EstimatedDeliveryTime = kernel.TimePtr(eta)
		if notes := req.Notes(); notes != "" {
			a.Notes = notes
		}
		return nil
	})
}

// CheckAssignable returns an InvalidTransitionError when a delivery can no
// longer receive a person: it is already assigned, past assigned, or terminal.
func (m DeliveryMatcher) CheckAssignable(a delivery.Assignment) error {
	if a.Status == delivery.Assigned {
		return errs.NewInvalidTransitionErrorWithCause(string(workflow.KindDelivery),
			string(a.Status), string(delivery.Assigned), errors.New("delivery is already assigned"))
	}
	return delivery.Flow.Check(a.Status, delivery.Assigned)
}

func ceilTime(t time.Time, d time.Duration) time.Time {
	truncated := t.Truncate(d)
	if truncated.Before(t) {
		return truncated.Add(d)
	}
	return truncated
}
