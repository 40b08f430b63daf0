package workflow

import (
	"context"
	"errors"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/services"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

// LoadDeliveries replaces the cached assignments with the ones matching filter.
func (f *Facade) LoadDeliveries(ctx context.Context, filter ports.DeliveryFilter) ([]delivery.Assignment, error) {
	var checks []error
	if filter.Status != "" {
		checks = append(checks, delivery.Flow.Validate(filter.Status))
	}
	if filter.Priority != "" {
		checks = append(checks, filter.Priority.Validate())
	}
	if err := errors.Join(checks...); err != nil {
		return nil, fail(f, &f.deliveries, err)
	}

	return track(f, &f.deliveries, func() ([]delivery.Assignment, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Deliveries, "list deliveries",
			func(ctx context.Context, s ports.DeliverySource) ([]delivery.Assignment, error) {
				return s.ListAssignments(ctx, filter)
			})
	}, replace[delivery.Assignment])
}

// LoadPersons replaces the cached delivery persons.
func (f *Facade) LoadPersons(ctx context.Context) ([]delivery.Person, error) {
	return track(f, &f.persons, func() ([]delivery.Person, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Deliveries, "list persons",
			func(ctx context.Context, s ports.DeliverySource) ([]delivery.Person, error) {
				return s.ListPersons(ctx)
			})
	}, replace[delivery.Person])
}

// CreateDelivery validates draft and creates the assignment in preparing.
func (f *Facade) CreateDelivery(ctx context.Context, draft delivery.Assignment) (delivery.Assignment, error) {
	checked, err := delivery.NewAssignment(draft.OrderID, draft.Priority, draft.CustomerName,
		draft.DeliveryAddress, draft.Notes)
	if err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	checked.CustomerPhone = draft.CustomerPhone
	checked.EstimatedDeliveryTime = kernel.ClonePtr(draft.EstimatedDeliveryTime)

	return track(f, &f.deliveries, func() (delivery.Assignment, error) {
		return datasource.Write(ctx, f.gateway, f.sources.Deliveries, "create delivery",
			func(ctx context.Context, s ports.DeliverySource) (delivery.Assignment, error) {
				return s.CreateAssignment(ctx, checked)
			})
	}, upsert(deliveryKey))
}

// UpdateDeliveryStatus moves assignment id to status. Moving to assigned
// requires a person on the assignment; use AssignDelivery to pick one.
func (f *Facade) UpdateDeliveryStatus(
	ctx context.Context,
	id string,
	status delivery.Status,
) (delivery.Assignment, error) {
	current, known := cached(f, &f.deliveries, id, deliveryKey)
	if err := checkCached(domain.KindDelivery, current.Status, known, status); err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	if known && status == delivery.Assigned && current.Status != status && !current.HasPerson() {
		return delivery.Assignment{}, fail(f, &f.deliveries, errs.NewValueIsRequiredErrorWithCause(
			"deliveryPersonId", errors.New("assign a delivery person to move a delivery to assigned")))
	}

	return f.writeDelivery(ctx, "update delivery status", current, id,
		func(ctx context.Context, s ports.DeliverySource) (delivery.Assignment, error) {
			return s.UpdateAssignmentStatus(ctx, id, status)
		})
}

// AssignDelivery puts a delivery person on assignment id.
//
// The person and the estimated delivery time are resolved here with the
// current persons, so that the source always receives an explicit person and
// a rounded estimate.
//
// Errors:
//   - InvalidTransitionError when the cached assignment cannot be assigned
//   - ErrPersonNotFound, ErrNoEligiblePerson from person selection
//   - ValueIsInvalidError when the estimate is below the lead time
func (f *Facade) AssignDelivery(
	ctx context.Context,
	id string,
	req delivery.AssignRequest,
) (delivery.Assignment, error) {
	if err := req.Validate(); err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	current, known := cached(f, &f.deliveries, id, deliveryKey)
	if known {
		if err := f.dispatcher.CheckAssignable(current); err != nil {
			return delivery.Assignment{}, fail(f, &f.deliveries, err)
		}
	}

	pool, err := f.LoadPersons(ctx)
	if err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	person, err := f.dispatcher.Select(pool, req.PersonID())
	if err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	eta, err := f.dispatcher.EstimateDelivery(req.EstimatedDeliveryTime(), f.clock())
	if err != nil {
		return delivery.Assignment{}, fail(f, &f.deliveries, err)
	}
	resolved := delivery.NewAssignRequest(person.ID, &eta, req.Notes())

	return f.writeDelivery(ctx, "assign delivery", current, id,
		func(ctx context.Context, s ports.DeliverySource) (delivery.Assignment, error) {
			return s.Assign(ctx, id, resolved)
		})
}

// AdvanceDelivery moves assignment id one step along the happy path.
func (f *Facade) AdvanceDelivery(ctx context.Context, id string) (delivery.Assignment, error) {
	current, known := cached(f, &f.deliveries, id, deliveryKey)
	if known {
		_, ok, err := services.Transitions.NextStep(domain.KindDelivery, current.Status)
		if err == nil && !ok {
			err = errs.NewInvalidTransitionErrorWithCause(string(domain.KindDelivery), string(current.Status), "",
				errors.New("no next step from a terminal status"))
		}
		if err != nil {
			return delivery.Assignment{}, fail(f, &f.deliveries, err)
		}
	}

	return f.writeDelivery(ctx, "advance delivery", current, id,
		func(ctx context.Context, s ports.DeliverySource) (delivery.Assignment, error) {
			return s.Progress(ctx, id)
		})
}

// UpdatePersonStatus changes the availability of person id.
func (f *Facade) UpdatePersonStatus(
	ctx context.Context,
	id string,
	status delivery.PersonStatus,
) (delivery.Person, error) {
	current, known := cached(f, &f.persons, id, personKey)
	if err := checkCached(domain.KindPerson, current.Status, known, status); err != nil {
		return delivery.Person{}, fail(f, &f.persons, err)
	}

	return track(f, &f.persons, func() (delivery.Person, error) {
		updated, served, err := datasource.WriteVia(ctx, f.gateway, f.sources.Deliveries, "update person status",
			func(ctx context.Context, s ports.DeliverySource) (delivery.Person, error) {
				return s.UpdatePersonStatus(ctx, id, status)
			})
		if err == nil {
			f.record(ctx, served, domain.KindPerson, id, current.Status, updated.Status)
		}
		return updated, err
	}, upsert(personKey))
}

// LoadMetrics replaces the cached dispatch metrics.
func (f *Facade) LoadMetrics(ctx context.Context) (delivery.Metrics, error) {
	return track(f, &f.metrics, func() (delivery.Metrics, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Deliveries, "delivery metrics",
			func(ctx context.Context, s ports.DeliverySource) (delivery.Metrics, error) {
				return s.Metrics(ctx)
			})
	}, func(_ delivery.Metrics, loaded delivery.Metrics) delivery.Metrics { return loaded })
}

// writeDelivery runs a delivery mutation; current is the cached assignment or
// the zero value.
func (f *Facade) writeDelivery(
	ctx context.Context,
	op string,
	current delivery.Assignment,
	id string,
	call datasource.Call[ports.DeliverySource, delivery.Assignment],
) (delivery.Assignment, error) {
	return track(f, &f.deliveries, func() (delivery.Assignment, error) {
		updated, served, err := datasource.WriteVia(ctx, f.gateway, f.sources.Deliveries, op, call)
		if err == nil {
			f.record(ctx, served, domain.KindDelivery, id, current.Status, updated.Status)
		}
		return updated, err
	}, upsert(deliveryKey))
}
