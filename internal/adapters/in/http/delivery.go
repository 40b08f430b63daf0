package http

import (
	"net/http"
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type assignRequest struct {
	DeliveryPersonID      string     `json:"deliveryPersonId"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
	Notes                 string     `json:"notes"`
}

// ListPersons handles GET /api/delivery/persons.
func (s *Server) ListPersons(ctx echo.Context) error {
	persons, err := s.facade.LoadPersons(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, persons)
}

// UpdatePersonStatus handles PATCH /api/delivery/persons/:id/status with {status}.
func (s *Server) UpdatePersonStatus(ctx echo.Context) error {
	status, err := s.bindStatus(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.facade.UpdatePersonStatus(ctx.Request().Context(), ctx.Param("id"), status)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, p)
}

// ListAssignments handles GET /api/delivery/assignments with the optional
// query filters status, deliveryPersonId, priority and search.
func (s *Server) ListAssignments(ctx echo.Context) error {
	filter := ports.DeliveryFilter{
		Status:           delivery.Status(ctx.QueryParam("status")),
		DeliveryPersonID: ctx.QueryParam("deliveryPersonId"),
		Priority:         delivery.Priority(ctx.QueryParam("priority")),
		Search:           ctx.QueryParam("search"),
	}

	assignments, err := s.facade.LoadDeliveries(ctx.Request().Context(), filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, assignments)
}

// CreateAssignment handles POST /api/delivery/assignments.
func (s *Server) CreateAssignment(ctx echo.Context) error {
	var draft delivery.Assignment
	if err := ctx.Bind(&draft); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	created, err := s.facade.CreateDelivery(ctx.Request().Context(), draft)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// UpdateAssignmentStatus handles PATCH /api/delivery/assignments/:id/status with {status}.
func (s *Server) UpdateAssignmentStatus(ctx echo.Context) error {
	status, err := s.bindStatus(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.facade.UpdateDeliveryStatus(ctx.Request().Context(), ctx.Param("id"), status)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// AssignDelivery handles POST /api/delivery/assignments/:id/assign. An empty
// body lets the matcher choose the person and the estimate.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	var req assignRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	assigned, err := s.facade.AssignDelivery(ctx.Request().Context(), ctx.Param("id"),
		delivery.NewAssignRequest(req.DeliveryPersonID, req.EstimatedDeliveryTime, req.Notes))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, assigned)
}

// ProgressDelivery handles POST /api/delivery/assignments/:id/progress.
func (s *Server) ProgressDelivery(ctx echo.Context) error {
	advanced, err := s.facade.AdvanceDelivery(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, advanced)
}

// Metrics handles GET /api/delivery/metrics.
func (s *Server) Metrics(ctx echo.Context) error {
	metrics, err := s.facade.LoadMetrics(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, metrics)
}
