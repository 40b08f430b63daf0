package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "restaurantops/internal/adapters/in/http"
	"restaurantops/internal/adapters/out/mockdata"
	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/application/workflow"
	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/domain/model/reservation"
	"restaurantops/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	m, err := mockdata.NewMock(mockdata.Fixed(now, kernel.DefaultTaxRate),
		mockdata.Config{Clock: kernel.FixedClock(now)})
	require.NoError(t, err)

	facade := workflow.NewFacade(datasource.NewGateway(nil, nil), workflow.Sources{
		Orders:       datasource.Binding[ports.OrderSource]{Mock: m},
		Deliveries:   datasource.Binding[ports.DeliverySource]{Mock: m},
		Reservations: datasource.Binding[ports.ReservationSource]{Mock: m},
	}, workflow.Config{Clock: kernel.FixedClock(now)})

	e := echo.New()
	api.NewServer(facade).Register(e)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_Health(t *testing.T) {
	e := newEcho(t)

	rec := do(e, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, datasource.ModeMock, body["mode"])
}

func TestServer_Orders(t *testing.T) {
	e := newEcho(t)

	t.Run("list by status", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/orders/status/READY", "")

		require.Equal(t, http.StatusOK, rec.Code)
		orders := decode[[]order.Order](t, rec)
		require.Len(t, orders, 1)
		assert.Equal(t, "1002", orders[0].ID)
	})

	t.Run("update along an edge", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/orders/1002/status", `{"status":"COMPLETED"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, order.Completed, decode[order.Order](t, rec).Status)
	})

	t.Run("update from a terminal status", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/orders/1003/status", `{"status":"PREPARING"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decode[api.Error](t, rec)
		assert.NotEmpty(t, body.Error)
		assert.False(t, body.Retryable)
	})

	t.Run("unknown status", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/orders/1001/status", `{"status":"BURNT"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing status", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/orders/1001/status", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing order", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/orders/9999", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(e, http.MethodDelete, "/api/orders/1001", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(e, http.MethodGet, "/api/orders/1001", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Delivery(t *testing.T) {
	e := newEcho(t)

	t.Run("filter assignments", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/delivery/assignments?search=oak", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assignments := decode[[]delivery.Assignment](t, rec)
		require.Len(t, assignments, 1)
		assert.Equal(t, "2", assignments[0].ID)
	})

	t.Run("assign without a body picks a person", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/delivery/assignments/1/assign", "")

		require.Equal(t, http.StatusOK, rec.Code)
		a := decode[delivery.Assignment](t, rec)
		assert.Equal(t, delivery.Assigned, a.Status)
		require.NotNil(t, a.DeliveryPersonID)
		assert.Equal(t, "1", *a.DeliveryPersonID)
	})

	t.Run("assign a busy person", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/delivery/assignments/2/assign", `{"deliveryPersonId":"2"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("progress", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/delivery/assignments/1/progress", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, delivery.PickedUp, decode[delivery.Assignment](t, rec).Status)
	})

	t.Run("progress a delivered assignment", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/delivery/assignments/3/progress", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("person status", func(t *testing.T) {
		rec := do(e, http.MethodPatch, "/api/delivery/persons/3/status", `{"status":"offline"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, delivery.Offline, decode[delivery.Person](t, rec).Status)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/delivery/metrics", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, decode[delivery.Metrics](t, rec).TotalDeliveries)
	})
}

func TestServer_Reservations(t *testing.T) {
	e := newEcho(t)

	t.Run("list pending", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/reservations/status/PENDING", "")

		require.Equal(t, http.StatusOK, rec.Code)
		reservations := decode[[]reservation.Reservation](t, rec)
		require.Len(t, reservations, 1)
		assert.Equal(t, "42", reservations[0].ID)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/reservations?startDate=05/01/2025", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reject without reason", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/reservations/42/reject", `{"approverId":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("generic update cannot confirm", func(t *testing.T) {
		rec := do(e, http.MethodPatch, "/api/reservations/42", `{"status":"CONFIRMED"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("approve", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/reservations/42/approve/admin", `{"tableId":"t-2","adminNotes":"window"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		r := decode[reservation.Reservation](t, rec)
		assert.Equal(t, reservation.Confirmed, r.Status)
		require.NotNil(t, r.TableID)
		assert.Equal(t, "t-2", *r.TableID)
	})

	t.Run("approve twice", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/reservations/42/approve/admin", `{}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("history of an unknown kind", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/workflow/history/invoice/1", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
