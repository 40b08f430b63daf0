package backend

import (
	"context"
	"net/http"

	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/core/ports"

	"github.com/shopspring/decimal"
)

var _ ports.OrderSource = (*OrderClient)(nil)

// OrderClient implements ports.OrderSource over the backend order endpoints.
type OrderClient struct {
	c *Client
}

// NewOrderClient creates an OrderClient.
func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

type createOrderItem struct {
	MenuItemID          string          `json:"menuItemId"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

type createOrderRequest struct {
	CustomerID   string            `json:"customerId,omitempty"`
	CustomerName string            `json:"customerName"`
	OrderType    order.Type        `json:"orderType"`
	Items        []createOrderItem `json:"items"`
	Tip          decimal.Decimal   `json:"tip"`
	Notes        string            `json:"notes,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// ListOrders reads /orders, /orders/customer/{id} or /orders/status/{status}
// depending on the filter. With both fields set the customer endpoint is used
// and the status is filtered locally.
func (o *OrderClient) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	path := o.c.api("orders")
	switch {
	case filter.CustomerID != "":
		path = o.c.api("orders", "customer", filter.CustomerID)
	case filter.Status != "":
		path = o.c.api("orders", "status", string(filter.Status))
	}

	var out []order.Order
	if err := o.c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	if filter.CustomerID != "" && filter.Status != "" {
		kept := out[:0]
		for _, ord := range out {
			if ord.Status == filter.Status {
				kept = append(kept, ord)
			}
		}
		out = kept
	}
	return out, nil
}

// GetOrder reads /orders/{id}.
func (o *OrderClient) GetOrder(ctx context.Context, id string) (order.Order, error) {
	var out order.Order
	err := o.c.do(ctx, http.MethodGet, o.c.api("orders", id), nil, nil, &out)
	return out, err
}

// CreateOrder posts the draft's customer, items and tip to /orders. The
// backend computes the authoritative totals.
func (o *OrderClient) CreateOrder(ctx context.Context, draft order.Order) (order.Order, error) {
	req := createOrderRequest{
		CustomerID:   draft.CustomerID,
		CustomerName: draft.CustomerName,
		OrderType:    draft.Type,
		Items:        make([]createOrderItem, 0, len(draft.Items)),
		Tip:          draft.Tip,
		Notes:        draft.Notes,
	}
	for _, item := range draft.Items {
		req.Items = append(req.Items, createOrderItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	var out order.Order
	err := o.c.do(ctx, http.MethodPost, o.c.api("orders"), nil, req, &out)
	return out, err
}

// UpdateOrderStatus puts {status} to /orders/{id}/status.
func (o *OrderClient) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	var out order.Order
	err := o.c.do(ctx, http.MethodPut, o.c.api("orders", id, "status"), nil, statusRequest{Status: string(status)}, &out)
	return out, err
}

// DeleteOrder deletes /orders/{id}.
func (o *OrderClient) DeleteOrder(ctx context.Context, id string) error {
	return o.c.do(ctx, http.MethodDelete, o.c.api("orders", id), nil, nil, nil)
}
