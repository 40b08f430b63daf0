// Package datasource routes every data access to either the live backend or
// the mock sources.
//
// The mode is decided once by Probe against the backend health endpoint and
// only changes again through an explicit Disconnect. While connected, a failed
// live read is served from the mock source instead; a live write falls back
// only when the backend could not be reached, so that rejections from the
// backend reach the caller.
//
// Example:
//
//	gw := datasource.NewGateway(client, logger)
//	gw.Probe(ctx)
//	orders := datasource.Binding[ports.OrderSource]{Live: liveOrders, Mock: mockSources}
//	list, err := datasource.Read(ctx, gw, orders, "list orders",
//	    func(ctx context.Context, s ports.OrderSource) ([]order.Order, error) {
//	        return s.ListOrders(ctx, ports.OrderFilter{})
//	    })
package datasource

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

const (
	// ModeLive is reported while the backend answers.
	ModeLive = "live"

	// ModeMock is reported before a successful probe and after a disconnect.
	ModeMock = "mock"
)

// Gateway holds the connection mode shared by every binding.
type Gateway struct {
	probe     ports.HealthProbe
	connected atomic.Bool
	logger    *slog.Logger
}

// NewGateway creates a disconnected gateway. A nil probe keeps the gateway
// in mock mode forever.
func NewGateway(probe ports.HealthProbe, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		probe:  probe,
		logger: logger.With("component", "datasource_gateway"),
	}
}

// Probe checks the backend once and sets the mode accordingly.
// It reports whether the gateway is connected afterwards.
func (g *Gateway) Probe(ctx context.Context) bool {
	if g.probe == nil {
		g.connected.Store(false)
		g.logger.InfoContext(ctx, "No backend configured, serving mock data")
		return false
	}

	if err := g.probe.Health(ctx); err != nil {
		g.connected.Store(false)
		g.logger.WarnContext(ctx, "Backend health check failed, serving mock data", "error", err)
		return false
	}

	g.connected.Store(true)
	g.logger.InfoContext(ctx, "Backend is reachable, serving live data")
	return true
}

// Disconnect switches to mock mode until the next successful Probe.
func (g *Gateway) Disconnect() {
	if g.connected.Swap(false) {
		g.logger.Info("Disconnected from backend, serving mock data")
	}
}

// Connected reports whether calls go to the live backend.
func (g *Gateway) Connected() bool {
	return g.connected.Load()
}

// Mode returns ModeLive or ModeMock.
func (g *Gateway) Mode() string {
	if g.Connected() {
		return ModeLive
	}
	return ModeMock
}

// Binding pairs the live and the mock implementation of one source contract.
type Binding[S any] struct {
	Live S
	Mock S
}

// Call is one operation on a source.
type Call[S, R any] func(ctx context.Context, source S) (R, error)

// Read runs call on the live source when connected and on the mock source
// otherwise. A live failure is retried on the mock source unless ctx is done.
func Read[S, R any](ctx context.Context, g *Gateway, b Binding[S], op string, call Call[S, R]) (R, error) {
	if !g.Connected() {
		return call(ctx, b.Mock)
	}

	result, err := call(ctx, b.Live)
	if err == nil || ctx.Err() != nil {
		return result, err
	}

	g.logger.WarnContext(ctx, "Live read failed, serving mock data", "op", op, "error", err)
	return call(ctx, b.Mock)
}

// Write runs call on the live source when connected and on the mock source
// otherwise. A live failure is retried on the mock source only when it is a
// network error; any other failure is returned as is.
func Write[S, R any](ctx context.Context, g *Gateway, b Binding[S], op string, call Call[S, R]) (R, error) {
	result, _, err := WriteVia(ctx, g, b, op, call)
	return result, err
}

// WriteVia is Write that also reports which source served the call,
// ModeLive or ModeMock.
func WriteVia[S, R any](ctx context.Context, g *Gateway, b Binding[S], op string, call Call[S, R]) (R, string, error) {
	if !g.Connected() {
		result, err := call(ctx, b.Mock)
		return result, ModeMock, err
	}

	result, err := call(ctx, b.Live)
	if err == nil || ctx.Err() != nil || !errors.Is(err, errs.ErrNetwork) {
		return result, ModeLive, err
	}

	g.logger.WarnContext(ctx, "Live write failed, writing to mock data", "op", op, "error", err)
	result, err = call(ctx, b.Mock)
	return result, ModeMock, err
}
