package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

// ReservationMatcher approves pending reservations, optionally onto a table,
// and denies them.
//
// Business rules:
//   - Approval moves PENDING to CONFIRMED and stamps who confirmed it
//   - A requested table must exist in the pool, be active, seat the party,
//     and not be held by another confirmed or seated reservation whose slot
//     overlaps (see reservation.SlotDuration)
//   - An empty table pool means tables are not managed locally: the table id
//     is recorded without checks
//   - Denial requires a non-blank reason
type ReservationMatcher struct{}

// NewReservationMatcher creates a new ReservationMatcher instance.
func NewReservationMatcher() ReservationMatcher {
	return ReservationMatcher{}
}

// Approve confirms reservation id.
//
// Errors:
//   - the approval's construction error
//   - ObjectNotFoundError when the reservation or the requested table is absent
//   - InvalidTransitionError when the reservation is not PENDING
//   - ValueIsInvalidError when the table cannot take the party
func (m ReservationMatcher) Approve(
	ctx context.Context,
	store ports.Store[reservation.Reservation],
	id string,
	approval reservation.Approval,
	tables []reservation.Table,
) (reservation.Reservation, error) {
	if err := approval.Validate(); err != nil {
		return reservation.Reservation{}, err
	}

	current, err := store.Get(id)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if err = m.CheckPending(current, reservation.Confirmed); err != nil {
		return reservation.Reservation{}, err
	}

	tableID := approval.TableID()
	if tableID != nil && len(tables) > 0 {
		others := store.List(func(r reservation.Reservation) bool { return r.ID != id })
		if err = m.CheckTable(current, *tableID, tables, others); err != nil {
			return reservation.Reservation{}, err
		}
	}

	return store.Transition(ctx, id, reservation.Confirmed, func(r *reservation.Reservation) error {
		if tableID != nil {
			r.TableID = tableID
		}
		if notes := approval.AdminNotes(); notes != "" {
			r.AdminNotes = notes
		}
		r.ConfirmedByUserID = kernel.StringPtr(approval.ApproverID())
		return nil
	})
}

// Deny rejects reservation id with reason.
//
// Errors:
//   - ValueIsRequiredError when reason is blank
//   - ObjectNotFoundError when the reservation is absent
//   - InvalidTransitionError when the reservation is not PENDING
func (m ReservationMatcher) Deny(
	ctx context.Context,
	store ports.Store[reservation.Reservation],
	id, reason, approverID string,
) (reservation.Reservation, error) {
	if err := ValidateDenialReason(reason); err != nil {
		return reservation.Reservation{}, err
	}

	current, err := store.Get(id)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if err = m.CheckPending(current, reservation.Denied); err != nil {
		return reservation.Reservation{}, err
	}

	return store.Transition(ctx, id, reservation.Denied, func(r *reservation.Reservation) error {
		r.DenialReason = strings.TrimSpace(reason)
		r.DeniedByUserID = kernel.StringPtr(approverID)
		return nil
	})
}

// ValidateDenialReason returns a ValueIsRequiredError for a blank reason.
func ValidateDenialReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredErrorWithCause("rejectionReason",
			errors.New("a denied reservation must state a reason"))
	}
	return nil
}

// CheckPending returns an InvalidTransitionError unless r is PENDING, so
// approving or denying twice is reported rather than ignored.
func (m ReservationMatcher) CheckPending(r reservation.Reservation, target reservation.Status) error {
	if r.Status != reservation.Pending {
		return errs.NewInvalidTransitionErrorWithCause(string(workflow.KindReservation),
			string(r.Status), string(target), fmt.Errorf("reservation is %s, not %s", r.Status, reservation.Pending))
	}
	return nil
}

// CheckTable validates that tableID can seat r given the other reservations.
func (m ReservationMatcher) CheckTable(
	r reservation.Reservation,
	tableID string,
	tables []reservation.Table,
	others []reservation.Reservation,
) error {
	var table *reservation.Table
	for i := range tables {
		if tables[i].ID == tableID {
			table = &tables[i]
			break
		}
	}
	if table == nil {
		return errs.NewObjectNotFoundError("tableId", tableID)
	}
	if !table.Fits(r.PartySize) {
		return errs.NewValueIsInvalidErrorWithCause("tableId",
			fmt.Errorf("table %s (capacity %d, active %t) cannot seat a party of %d",
				table.Name, table.Capacity, table.IsActive, r.PartySize))
	}
	for i := range others {
		other := &others[i]
		if other.Holds() && *other.TableID == tableID && other.Overlaps(&r) {
			return errs.NewValueIsInvalidErrorWithCause("tableId",
				fmt.Errorf("table %s is held by reservation %s at %s",
					table.Name, other.ID, other.ReservationTime.Format("2006-01-02 15:04")))
		}
	}
	return nil
}
