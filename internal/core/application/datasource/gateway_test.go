package datasource_test

import (
	"context"
	"errors"
	"testing"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHealthProbe struct{ mock.Mock }

func (m *MockHealthProbe) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderSource struct{ mock.Mock }

func (m *MockOrderSource) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderSource) GetOrder(ctx context.Context, id string) (order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderSource) CreateOrder(ctx context.Context, draft order.Order) (order.Order, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderSource) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderSource) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func listOrders(ctx context.Context, s ports.OrderSource) ([]order.Order, error) {
	return s.ListOrders(ctx, ports.OrderFilter{})
}

func updateStatus(ctx context.Context, s ports.OrderSource) (order.Order, error) {
	return s.UpdateOrderStatus(ctx, "1001", order.Confirmed)
}

func setup(t *testing.T, healthy bool) (*datasource.Gateway, *MockOrderSource, *MockOrderSource) {
	t.Helper()
	probe := new(MockHealthProbe)
	if healthy {
		probe.On("Health", mock.Anything).Return(nil).Once()
	} else {
		probe.On("Health", mock.Anything).Return(errs.NewNetworkError("health", 503)).Once()
	}

	gw := datasource.NewGateway(probe, nil)
	require.Equal(t, healthy, gw.Probe(t.Context()))
	probe.AssertExpectations(t)
	return gw, new(MockOrderSource), new(MockOrderSource)
}

func TestGateway_Probe(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		gw, _, _ := setup(t, true)
		assert.True(t, gw.Connected())
		assert.Equal(t, datasource.ModeLive, gw.Mode())

		gw.Disconnect()

		assert.False(t, gw.Connected())
		assert.Equal(t, datasource.ModeMock, gw.Mode())
	})

	t.Run("unhealthy backend", func(t *testing.T) {
		gw, _, _ := setup(t, false)
		assert.False(t, gw.Connected())
	})

	t.Run("no probe", func(t *testing.T) {
		gw := datasource.NewGateway(nil, nil)
		assert.False(t, gw.Probe(t.Context()))
	})
}

func TestRead(t *testing.T) {
	mocked := []order.Order{{ID: "1001"}}
	live := []order.Order{{ID: "9"}}

	t.Run("disconnected reads the mock only", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, false)
		mockSrc.On("ListOrders", mock.Anything, ports.OrderFilter{}).Return(mocked, nil).Once()

		got, err := datasource.Read(t.Context(), gw, datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc},
			"list orders", listOrders)

		require.NoError(t, err)
		assert.Equal(t, mocked, got)
		liveSrc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})

	t.Run("connected reads live", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, true)
		liveSrc.On("ListOrders", mock.Anything, ports.OrderFilter{}).Return(live, nil).Once()

		got, err := datasource.Read(t.Context(), gw, datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc},
			"list orders", listOrders)

		require.NoError(t, err)
		assert.Equal(t, live, got)
		mockSrc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})

	t.Run("live failure falls back to mock", func(t *testing.T) {
		for _, liveErr := range []error{
			errs.NewNetworkErrorWithCause("list orders", errors.New("connection refused")),
			errs.NewValueIsInvalidError("status"),
		} {
			gw, liveSrc, mockSrc := setup(t, true)
			liveSrc.On("ListOrders", mock.Anything, ports.OrderFilter{}).Return(nil, liveErr).Once()
			mockSrc.On("ListOrders", mock.Anything, ports.OrderFilter{}).Return(mocked, nil).Once()

			got, err := datasource.Read(t.Context(), gw,
				datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc}, "list orders", listOrders)

			require.NoError(t, err)
			assert.Equal(t, mocked, got)
			assert.True(t, gw.Connected(), "a failed read does not change the mode")
		}
	})

	t.Run("cancelled context does not fall back", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, true)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		liveSrc.On("ListOrders", mock.Anything, ports.OrderFilter{}).Return(nil, context.Canceled).Once()

		_, err := datasource.Read(ctx, gw, datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc},
			"list orders", listOrders)

		assert.ErrorIs(t, err, context.Canceled)
		mockSrc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})
}

func TestWrite(t *testing.T) {
	confirmed := order.Order{ID: "1001", Status: order.Confirmed}

	t.Run("network failure falls back to mock", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, true)
		liveSrc.On("UpdateOrderStatus", mock.Anything, "1001", order.Confirmed).
			Return(order.Order{}, errs.NewNetworkError("update order status", 502)).Once()
		mockSrc.On("UpdateOrderStatus", mock.Anything, "1001", order.Confirmed).Return(confirmed, nil).Once()

		got, served, err := datasource.WriteVia(t.Context(), gw,
			datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc}, "update order status", updateStatus)

		require.NoError(t, err)
		assert.Equal(t, confirmed, got)
		assert.Equal(t, datasource.ModeMock, served)
	})

	t.Run("connected writes live", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, true)
		liveSrc.On("UpdateOrderStatus", mock.Anything, "1001", order.Confirmed).Return(confirmed, nil).Once()

		_, served, err := datasource.WriteVia(t.Context(), gw,
			datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc}, "update order status", updateStatus)

		require.NoError(t, err)
		assert.Equal(t, datasource.ModeLive, served)
		liveSrc.AssertExpectations(t)
	})

	t.Run("validation failure surfaces", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, true)
		liveSrc.On("UpdateOrderStatus", mock.Anything, "1001", order.Confirmed).
			Return(order.Order{}, errs.NewValueIsInvalidError("status")).Once()

		_, err := datasource.Write(t.Context(), gw, datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc},
			"update order status", updateStatus)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		mockSrc.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disconnected writes the mock only", func(t *testing.T) {
		gw, liveSrc, mockSrc := setup(t, false)
		mockSrc.On("UpdateOrderStatus", mock.Anything, "1001", order.Confirmed).Return(confirmed, nil).Once()

		_, err := datasource.Write(t.Context(), gw, datasource.Binding[ports.OrderSource]{Live: liveSrc, Mock: mockSrc},
			"update order status", updateStatus)

		require.NoError(t, err)
		liveSrc.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
