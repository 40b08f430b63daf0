package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"
)

// Status is the lifecycle state of a reservation.
type Status = workflow.State

const (
	Pending   Status = "PENDING"
	Confirmed Status = "CONFIRMED"
	Denied    Status = "DENIED"
	Cancelled Status = "CANCELLED"
	Seated    Status = "SEATED"
	Completed Status = "COMPLETED"
	NoShow    Status = "NO_SHOW"
)

// Flow is the reservation transition table.
var Flow = workflow.MustNewTable(workflow.Definition{
	Kind:      workflow.KindReservation,
	Canonical: []Status{Pending, Confirmed, Seated, Completed},
	Extra: []workflow.Edge{
		{From: Pending, To: Denied},
		{From: Pending, To: Cancelled},
		{From: Confirmed, To: Cancelled},
		{From: Confirmed, To: NoShow},
	},
	Terminal: []Status{Denied, Cancelled, Completed, NoShow},
	Initial:  Pending,
})

const (
	// MinPartySize and MaxPartySize bound the number of guests per reservation.
	MinPartySize = 1
	MaxPartySize = 20

	// SlotDuration is how long a reservation holds its table.
	SlotDuration = 2 * time.Hour
)

// Reservation is a customer's request for a table at a given time.
type Reservation struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customerId,omitempty"`
	CustomerName      string     `json:"customerName"`
	CustomerEmail     string     `json:"customerEmail,omitempty"`
	CustomerPhone     string     `json:"customerPhone,omitempty"`
	ReservationTime   time.Time  `json:"reservationTime"`
	PartySize         int        `json:"partySize"`
	TableID           *string    `json:"tableId,omitempty"`
	Status            Status     `json:"status"`
	SpecialRequests   string     `json:"specialRequests,omitempty"`
	AdminNotes        string     `json:"adminNotes,omitempty"`
	DenialReason      string     `json:"denialReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	ConfirmedAt       *time.Time `json:"confirmedAt,omitempty"`
	ConfirmedByUserID *string    `json:"confirmedByUserId,omitempty"`
	DeniedByUserID    *string    `json:"deniedByUserId,omitempty"`
}

// NewReservation builds a reservation draft.
//
// Parameters:
//   - customerName: required
//   - reservationTime: requested date and time (required)
//   - partySize: between MinPartySize and MaxPartySize
//
// Returns:
//   - Reservation: a draft without identifier, ready for a store Create
//   - error: joined validation errors
func NewReservation(
	customerID, customerName, email, phone string,
	reservationTime time.Time,
	partySize int,
	specialRequests string,
) (Reservation, error) {
	r := Reservation{
		CustomerID:      customerID,
		CustomerName:    customerName,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ReservationTime: reservationTime,
		PartySize:       partySize,
		SpecialRequests: specialRequests,
	}
	if err := errors.Join(
		kernel.ValidateID("customerName", customerName),
		validateTime(reservationTime),
		validatePartySize(partySize),
	); err != nil {
		return Reservation{}, err
	}
	return r, nil
}

// Key returns the reservation identifier.
func (r *Reservation) Key() string {
	return r.ID
}

// State returns the current status.
func (r *Reservation) State() workflow.State {
	return r.Status
}

// Init assigns identity and the initial status to a draft.
func (r *Reservation) Init(id string, now time.Time) {
	r.ID = id
	r.Status = Flow.Initial()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.ConfirmedAt = nil
	r.ConfirmedByUserID = nil
	r.DeniedByUserID = nil
	r.DenialReason = ""
}

// Enter moves the reservation to status and stamps ConfirmedAt on CONFIRMED.
func (r *Reservation) Enter(status Status, now time.Time) {
	r.Status = status
	r.UpdatedAt = now
	if status == Confirmed {
		r.ConfirmedAt = kernel.TimePtr(now)
	}
}

// Holds reports whether the reservation occupies its table.
func (r *Reservation) Holds() bool {
	return r.TableID != nil && (r.Status == Confirmed || r.Status == Seated)
}

// Overlaps reports whether the two reservations' table slots intersect.
func (r *Reservation) Overlaps(other *Reservation) bool {
	return r.ReservationTime.Before(other.ReservationTime.Add(SlotDuration)) &&
		other.ReservationTime.Before(r.ReservationTime.Add(SlotDuration))
}

// Validate checks the reservation invariants.
func (r *Reservation) Validate() error {
	if r == nil {
		return errs.NewValueIsRequiredError("reservation")
	}

	var reason error
	if r.Status == Denied && strings.TrimSpace(r.DenialReason) == "" {
		reason = errs.NewValueIsRequiredErrorWithCause("rejectionReason",
			fmt.Errorf("status %s requires a denial reason", Denied))
	}

	return errors.Join(
		kernel.ValidateID("id", r.ID),
		kernel.ValidateID("customerName", r.CustomerName),
		Flow.Validate(r.Status),
		validateTime(r.ReservationTime),
		validatePartySize(r.PartySize),
		reason,
	)
}

// Clone returns a deep copy of the reservation.
func (r *Reservation) Clone() *Reservation {
	cp := *r
	cp.TableID = kernel.ClonePtr(r.TableID)
	cp.ConfirmedAt = kernel.ClonePtr(r.ConfirmedAt)
	cp.ConfirmedByUserID = kernel.ClonePtr(r.ConfirmedByUserID)
	cp.DeniedByUserID = kernel.ClonePtr(r.DeniedByUserID)
	return &cp
}

func validateTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("reservationTime")
	}
	return nil
}

func validatePartySize(size int) error {
	if size < MinPartySize || size > MaxPartySize {
		return errs.NewValueIsOutOfRangeError("partySize", size, MinPartySize, MaxPartySize)
	}
	return nil
}
