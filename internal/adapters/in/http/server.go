package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/application/workflow"
	"restaurantops/internal/core/domain/services"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the workflow facade as a JSON API. Resource paths mirror the
// restaurant backend so that presentation code can talk to either.
type Server struct {
	facade *workflow.Facade
	clock  func() time.Time
}

// NewServer creates a new HTTP server over facade.
func NewServer(facade *workflow.Facade) *Server {
	return &Server{facade: facade, clock: time.Now}
}

// Error is the error body of every failed request.
type Error struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
	Retryable   bool     `json:"retryable"`
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", s.Health)
	api.GET("/workflow/state", s.State)
	api.GET("/workflow/history/:kind/:id", s.History)

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/customer/:customerId", s.ListOrders)
	api.GET("/orders/status/:status", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.GET("/delivery/persons", s.ListPersons)
	api.PATCH("/delivery/persons/:id/status", s.UpdatePersonStatus)
	api.GET("/delivery/assignments", s.ListAssignments)
	api.POST("/delivery/assignments", s.CreateAssignment)
	api.PATCH("/delivery/assignments/:id/status", s.UpdateAssignmentStatus)
	api.POST("/delivery/assignments/:id/assign", s.AssignDelivery)
	api.POST("/delivery/assignments/:id/progress", s.ProgressDelivery)
	api.GET("/delivery/metrics", s.Metrics)

	api.GET("/reservations", s.ListReservations)
	api.POST("/reservations", s.CreateReservation)
	api.GET("/reservations/status/:status", s.ListReservations)
	api.GET("/reservations/:id", s.GetReservation)
	api.PATCH("/reservations/:id", s.UpdateReservationStatus)
	api.DELETE("/reservations/:id", s.DeleteReservation)
	api.POST("/reservations/:id/approve/:approverId", s.ApproveReservation)
	api.POST("/reservations/:id/reject", s.RejectReservation)
}

type healthResponse struct {
	Status string    `json:"status"`
	Mode   string    `json:"mode"`
	Time   time.Time `json:"time"`
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	mode := datasource.ModeMock
	if s.facade.Connected() {
		mode = datasource.ModeLive
	}
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok", Mode: mode, Time: s.clock().UTC()})
}

// State handles GET /api/workflow/state - the views of every domain.
func (s *Server) State(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.facade.Snapshot())
}

// History handles GET /api/workflow/history/:kind/:id.
func (s *Server) History(ctx echo.Context) error {
	history, err := s.facade.History(ctx.Request().Context(), domain.Kind(ctx.Param("kind")), ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, history)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) bindStatus(ctx echo.Context) (domain.State, error) {
	var req statusRequest
	if err := ctx.Bind(&req); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if strings.TrimSpace(req.Status) == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	return domain.State(req.Status), nil
}

// fail renders err with the status code matching its class.
func (s *Server) fail(ctx echo.Context, err error) error {
	view := workflow.Describe(err)
	return ctx.JSON(statusCode(err), Error{
		Error:       view.Message,
		Suggestions: view.Suggestions,
		Retryable:   view.Retryable,
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, services.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, services.ErrNoEligiblePerson):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnknownState), errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
