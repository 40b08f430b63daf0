package workflow

import (
	"context"
	"errors"
	"fmt"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/services"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

// LoadReservations replaces the cached reservations with the ones matching filter.
func (f *Facade) LoadReservations(
	ctx context.Context,
	filter ports.ReservationFilter,
) ([]reservation.Reservation, error) {
	var checks []error
	if filter.Status != "" {
		checks = append(checks, reservation.Flow.Validate(filter.Status))
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("endDate",
			fmt.Errorf("%s is before the start date", filter.EndDate.Format("2006-01-02"))))
	}
	if err := errors.Join(checks...); err != nil {
		return nil, fail(f, &f.reservations, err)
	}

	return track(f, &f.reservations, func() ([]reservation.Reservation, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Reservations, "list reservations",
			func(ctx context.Context, s ports.ReservationSource) ([]reservation.Reservation, error) {
				return s.ListReservations(ctx, filter)
			})
	}, replace[reservation.Reservation])
}

// LoadPendingReservations replaces the cached reservations with the ones
// awaiting a decision.
func (f *Facade) LoadPendingReservations(ctx context.Context) ([]reservation.Reservation, error) {
	return track(f, &f.reservations, func() ([]reservation.Reservation, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Reservations, "list pending reservations",
			func(ctx context.Context, s ports.ReservationSource) ([]reservation.Reservation, error) {
				return s.ListPending(ctx)
			})
	}, replace[reservation.Reservation])
}

// GetReservation fetches reservation id and refreshes it in the cache.
func (f *Facade) GetReservation(ctx context.Context, id string) (reservation.Reservation, error) {
	if id == "" {
		return reservation.Reservation{}, fail(f, &f.reservations, errs.NewValueIsRequiredError("id"))
	}

	return track(f, &f.reservations, func() (reservation.Reservation, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Reservations, "get reservation",
			func(ctx context.Context, s ports.ReservationSource) (reservation.Reservation, error) {
				return s.GetReservation(ctx, id)
			})
	}, upsert(reservationKey))
}

// CreateReservation validates draft and creates it as PENDING.
func (f *Facade) CreateReservation(
	ctx context.Context,
	draft reservation.Reservation,
) (reservation.Reservation, error) {
	checked, err := reservation.NewReservation(draft.CustomerID, draft.CustomerName, draft.CustomerEmail,
		draft.CustomerPhone, draft.ReservationTime, draft.PartySize, draft.SpecialRequests)
	if err != nil {
		return reservation.Reservation{}, fail(f, &f.reservations, err)
	}

	return track(f, &f.reservations, func() (reservation.Reservation, error) {
		return datasource.Write(ctx, f.gateway, f.sources.Reservations, "create reservation",
			func(ctx context.Context, s ports.ReservationSource) (reservation.Reservation, error) {
				return s.CreateReservation(ctx, checked)
			})
	}, upsert(reservationKey))
}

// ApproveReservation confirms reservation id.
func (f *Facade) ApproveReservation(
	ctx context.Context,
	id string,
	approval reservation.Approval,
) (reservation.Reservation, error) {
	if err := approval.Validate(); err != nil {
		return reservation.Reservation{}, fail(f, &f.reservations, err)
	}
	current, known := cached(f, &f.reservations, id, reservationKey)
	if known {
		if err := f.booking.CheckPending(current, reservation.Confirmed); err != nil {
			return reservation.Reservation{}, fail(f, &f.reservations, err)
		}
	}

	return f.writeReservation(ctx, "approve reservation", current, id,
		func(ctx context.Context, s ports.ReservationSource) (reservation.Reservation, error) {
			return s.Approve(ctx, id, approval)
		})
}

// DenyReservation rejects reservation id. The reason is required.
func (f *Facade) DenyReservation(
	ctx context.Context,
	id, reason, approverID string,
) (reservation.Reservation, error) {
	if err := services.ValidateDenialReason(reason); err != nil {
		return reservation.Reservation{}, fail(f, &f.reservations, err)
	}
	current, known := cached(f, &f.reservations, id, reservationKey)
	if known {
		if err := f.booking.CheckPending(current, reservation.Denied); err != nil {
			return reservation.Reservation{}, fail(f, &f.reservations, err)
		}
	}

	return f.writeReservation(ctx, "deny reservation", current, id,
		func(ctx context.Context, s ports.ReservationSource) (reservation.Reservation, error) {
			return s.Deny(ctx, id, reason, approverID)
		})
}

// UpdateReservationStatus moves reservation id to status. CONFIRMED and
// DENIED go through ApproveReservation and DenyReservation.
func (f *Facade) UpdateReservationStatus(
	ctx context.Context,
	id string,
	status reservation.Status,
) (reservation.Reservation, error) {
	current, known := cached(f, &f.reservations, id, reservationKey)
	err := checkCached(domain.KindReservation, current.Status, known, status)
	if err == nil && (status == reservation.Confirmed || status == reservation.Denied) {
		err = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s requires an approval decision, use approve or reject", status))
	}
	if err != nil {
		return reservation.Reservation{}, fail(f, &f.reservations, err)
	}

	return f.writeReservation(ctx, "update reservation status", current, id,
		func(ctx context.Context, s ports.ReservationSource) (reservation.Reservation, error) {
			return s.UpdateReservationStatus(ctx, id, status)
		})
}

// DeleteReservation removes reservation id.
func (f *Facade) DeleteReservation(ctx context.Context, id string) error {
	_, err := track(f, &f.reservations, func() (struct{}, error) {
		return datasource.Write(ctx, f.gateway, f.sources.Reservations, "delete reservation",
			func(ctx context.Context, s ports.ReservationSource) (struct{}, error) {
				return struct{}{}, s.DeleteReservation(ctx, id)
			})
	}, remove(reservationKey, id))
	return err
}

func (f *Facade) writeReservation(
	ctx context.Context,
	op string,
	current reservation.Reservation,
	id string,
	call datasource.Call[ports.ReservationSource, reservation.Reservation],
) (reservation.Reservation, error) {
	return track(f, &f.reservations, func() (reservation.Reservation, error) {
		updated, served, err := datasource.WriteVia(ctx, f.gateway, f.sources.Reservations, op, call)
		if err == nil {
			f.record(ctx, served, domain.KindReservation, id, current.Status, updated.Status)
		}
		return updated, err
	}, upsert(reservationKey))
}
