package http

import (
	"net/http"
	"time"

	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type approveRequest struct {
	TableID    string `json:"tableId"`
	AdminNotes string `json:"adminNotes"`
}

type rejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
	ApproverID      string `json:"approverId"`
}

// ListReservations handles GET /api/reservations with the optional query
// filters status, startDate, endDate (YYYY-MM-DD) and customerName, and
// GET /api/reservations/status/:status.
func (s *Server) ListReservations(ctx echo.Context) error {
	filter := ports.ReservationFilter{
		Status:       reservation.Status(ctx.Param("status")),
		CustomerName: ctx.QueryParam("customerName"),
	}
	if filter.Status == "" {
		filter.Status = reservation.Status(ctx.QueryParam("status"))
	}

	var err error
	if filter.StartDate, err = bindDate(ctx, "startDate", false); err != nil {
		return s.fail(ctx, err)
	}
	if filter.EndDate, err = bindDate(ctx, "endDate", true); err != nil {
		return s.fail(ctx, err)
	}

	reservations, err := s.facade.LoadReservations(ctx.Request().Context(), filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, reservations)
}

// GetReservation handles GET /api/reservations/:id.
func (s *Server) GetReservation(ctx echo.Context) error {
	r, err := s.facade.GetReservation(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, r)
}

// CreateReservation handles POST /api/reservations.
func (s *Server) CreateReservation(ctx echo.Context) error {
	var draft reservation.Reservation
	if err := ctx.Bind(&draft); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	created, err := s.facade.CreateReservation(ctx.Request().Context(), draft)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// ApproveReservation handles POST /api/reservations/:id/approve/:approverId
// with {tableId?, adminNotes?}.
func (s *Server) ApproveReservation(ctx echo.Context) error {
	var req approveRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	approval, err := reservation.NewApproval(ctx.Param("approverId"), req.TableID, req.AdminNotes)
	if err != nil {
		return s.fail(ctx, err)
	}

	approved, err := s.facade.ApproveReservation(ctx.Request().Context(), ctx.Param("id"), approval)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, approved)
}

// RejectReservation handles POST /api/reservations/:id/reject with
// {rejectionReason, approverId?}.
func (s *Server) RejectReservation(ctx echo.Context) error {
	var req rejectRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	denied, err := s.facade.DenyReservation(ctx.Request().Context(), ctx.Param("id"), req.RejectionReason, req.ApproverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, denied)
}

// UpdateReservationStatus handles PATCH /api/reservations/:id with {status}.
func (s *Server) UpdateReservationStatus(ctx echo.Context) error {
	status, err := s.bindStatus(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.facade.UpdateReservationStatus(ctx.Request().Context(), ctx.Param("id"), status)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (s *Server) DeleteReservation(ctx echo.Context) error {
	if err := s.facade.DeleteReservation(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// bindDate binds an optional YYYY-MM-DD query parameter. An end date covers
// the whole day.
func bindDate(ctx echo.Context, param string, endOfDay bool) (*time.Time, error) {
	var date *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, param, ctx.QueryParams(), &date); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if date == nil {
		return nil, nil
	}
	day := date.Time
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}
