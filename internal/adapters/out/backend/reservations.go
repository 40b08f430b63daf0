package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/ports"
)

var _ ports.ReservationSource = (*ReservationClient)(nil)

// ReservationsPath is the absolute reservation collection path.
const ReservationsPath = "/api/reservations"

// ReservationClient implements ports.ReservationSource over the backend
// reservation endpoints.
type ReservationClient struct {
	c *Client
}

// NewReservationClient creates a ReservationClient.
func NewReservationClient(c *Client) *ReservationClient {
	return &ReservationClient{c: c}
}

type createReservationRequest struct {
	CustomerID      string    `json:"customerId,omitempty"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail,omitempty"`
	CustomerPhone   string    `json:"customerPhone,omitempty"`
	ReservationTime time.Time `json:"reservationTime"`
	PartySize       int       `json:"partySize"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

type approveRequest struct {
	TableID    *string `json:"tableId,omitempty"`
	AdminNotes string  `json:"adminNotes,omitempty"`
}

type rejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
	ApproverID      string `json:"approverId,omitempty"`
}

func reservationPath(segments ...string) string {
	return ReservationsPath + join(segments...)
}

// ListReservations reads /api/reservations with the filter as query
// parameters. Dates are sent as YYYY-MM-DD.
func (r *ReservationClient) ListReservations(
	ctx context.Context,
	filter ports.ReservationFilter,
) ([]reservation.Reservation, error) {
	query := url.Values{}
	setIf(query, "status", string(filter.Status))
	setIf(query, "customerName", filter.CustomerName)
	if filter.StartDate != nil {
		query.Set("startDate", filter.StartDate.Format(time.DateOnly))
	}
	if filter.EndDate != nil {
		query.Set("endDate", filter.EndDate.Format(time.DateOnly))
	}

	var out []reservation.Reservation
	if err := r.c.do(ctx, http.MethodGet, ReservationsPath, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPending reads /api/reservations/status/PENDING.
func (r *ReservationClient) ListPending(ctx context.Context) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	err := r.c.do(ctx, http.MethodGet, reservationPath("status", string(reservation.Pending)), nil, nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetReservation reads /api/reservations/{id}.
func (r *ReservationClient) GetReservation(ctx context.Context, id string) (reservation.Reservation, error) {
	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodGet, reservationPath(id), nil, nil, &out)
	return out, err
}

// CreateReservation posts a draft to /api/reservations.
func (r *ReservationClient) CreateReservation(
	ctx context.Context,
	draft reservation.Reservation,
) (reservation.Reservation, error) {
	req := createReservationRequest{
		CustomerID:      draft.CustomerID,
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		CustomerPhone:   draft.CustomerPhone,
		ReservationTime: draft.ReservationTime,
		PartySize:       draft.PartySize,
		SpecialRequests: draft.SpecialRequests,
	}
	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodPost, ReservationsPath, nil, req, &out)
	return out, err
}

// Approve posts {tableId?, adminNotes?} to /api/reservations/{id}/approve/{approverId}.
func (r *ReservationClient) Approve(
	ctx context.Context,
	id string,
	approval reservation.Approval,
) (reservation.Reservation, error) {
	if err := approval.Validate(); err != nil {
		return reservation.Reservation{}, err
	}
	body := approveRequest{TableID: approval.TableID(), AdminNotes: approval.AdminNotes()}

	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodPost, reservationPath(id, "approve", approval.ApproverID()), nil, body, &out)
	return out, err
}

// Deny posts {rejectionReason, approverId?} to /api/reservations/{id}/reject.
func (r *ReservationClient) Deny(ctx context.Context, id, reason, approverID string) (reservation.Reservation, error) {
	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodPost, reservationPath(id, "reject"), nil,
		rejectRequest{RejectionReason: reason, ApproverID: approverID}, &out)
	return out, err
}

// UpdateReservationStatus patches {status} to /api/reservations/{id}.
func (r *ReservationClient) UpdateReservationStatus(
	ctx context.Context,
	id string,
	status reservation.Status,
) (reservation.Reservation, error) {
	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodPatch, reservationPath(id), nil, statusRequest{Status: string(status)}, &out)
	return out, err
}

// DeleteReservation deletes /api/reservations/{id}.
func (r *ReservationClient) DeleteReservation(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, reservationPath(id), nil, nil, nil)
}
