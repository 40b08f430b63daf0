package workflow

import (
	"context"

	"restaurantops/internal/core/application/datasource"
	"restaurantops/internal/core/domain/model/order"
	domain "restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/core/ports"
	"restaurantops/internal/pkg/errs"
)

// LoadOrders replaces the cached orders with the orders matching filter.
func (f *Facade) LoadOrders(ctx context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	if filter.Status != "" {
		if err := order.Flow.Validate(filter.Status); err != nil {
			return nil, fail(f, &f.orders, err)
		}
	}

	return track(f, &f.orders, func() ([]order.Order, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Orders, "list orders",
			func(ctx context.Context, s ports.OrderSource) ([]order.Order, error) {
				return s.ListOrders(ctx, filter)
			})
	}, replace[order.Order])
}

// GetOrder fetches order id and refreshes it in the cache.
func (f *Facade) GetOrder(ctx context.Context, id string) (order.Order, error) {
	if id == "" {
		return order.Order{}, fail(f, &f.orders, errs.NewValueIsRequiredError("id"))
	}

	return track(f, &f.orders, func() (order.Order, error) {
		return datasource.Read(ctx, f.gateway, f.sources.Orders, "get order",
			func(ctx context.Context, s ports.OrderSource) (order.Order, error) {
				return s.GetOrder(ctx, id)
			})
	}, upsert(orderKey))
}

// CreateOrder validates draft, recomputes its totals and creates it.
func (f *Facade) CreateOrder(ctx context.Context, draft order.Order) (order.Order, error) {
	checked, err := order.NewOrder(draft.CustomerID, draft.CustomerName, draft.Type, draft.Items, draft.Tip, f.taxRate)
	if err != nil {
		return order.Order{}, fail(f, &f.orders, err)
	}
	checked.Notes = draft.Notes

	return track(f, &f.orders, func() (order.Order, error) {
		return datasource.Write(ctx, f.gateway, f.sources.Orders, "create order",
			func(ctx context.Context, s ports.OrderSource) (order.Order, error) {
				return s.CreateOrder(ctx, checked)
			})
	}, upsert(orderKey))
}

// UpdateOrderStatus moves order id to status.
func (f *Facade) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	current, known := cached(f, &f.orders, id, orderKey)
	if err := checkCached(domain.KindOrder, current.Status, known, status); err != nil {
		return order.Order{}, fail(f, &f.orders, err)
	}

	return track(f, &f.orders, func() (order.Order, error) {
		updated, served, err := datasource.WriteVia(ctx, f.gateway, f.sources.Orders, "update order status",
			func(ctx context.Context, s ports.OrderSource) (order.Order, error) {
				return s.UpdateOrderStatus(ctx, id, status)
			})
		if err == nil {
			f.record(ctx, served, domain.KindOrder, id, current.Status, updated.Status)
		}
		return updated, err
	}, upsert(orderKey))
}

// DeleteOrder removes order id.
func (f *Facade) DeleteOrder(ctx context.Context, id string) error {
	_, err := track(f, &f.orders, func() (struct{}, error) {
		return datasource.Write(ctx, f.gateway, f.sources.Orders, "delete order",
			func(ctx context.Context, s ports.OrderSource) (struct{}, error) {
				return struct{}{}, s.DeleteOrder(ctx, id)
			})
	}, remove(orderKey, id))
	return err
}
