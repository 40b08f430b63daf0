package http

import (
	"net/http"

	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/orders, /api/orders/customer/:customerId and
// /api/orders/status/:status.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter := ports.OrderFilter{
		CustomerID: ctx.Param("customerId"),
		Status:     order.Status(ctx.Param("status")),
	}
	if filter.CustomerID == "" {
		filter.CustomerID = ctx.QueryParam("customerId")
	}
	if filter.Status == "" {
		filter.Status = order.Status(ctx.QueryParam("status"))
	}

	orders, err := s.facade.LoadOrders(ctx.Request().Context(), filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	o, err := s.facade.GetOrder(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, o)
}

// CreateOrder handles POST /api/orders. Totals are computed server side.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var draft order.Order
	if err := ctx.Bind(&draft); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	created, err := s.facade.CreateOrder(ctx.Request().Context(), draft)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status with {status}.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	status, err := s.bindStatus(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.facade.UpdateOrderStatus(ctx.Request().Context(), ctx.Param("id"), status)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, updated)
}

// DeleteOrder handles DELETE /api/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	if err := s.facade.DeleteOrder(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
