package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"restaurantops/internal/core/domain/model/delivery"
	"restaurantops/internal/core/ports"
)

var _ ports.DeliverySource = (*DeliveryClient)(nil)

// DeliveryClient implements ports.DeliverySource over the backend delivery endpoints.
type DeliveryClient struct {
	c *Client
}

// NewDeliveryClient creates a DeliveryClient.
func NewDeliveryClient(c *Client) *DeliveryClient {
	return &DeliveryClient{c: c}
}

type createAssignmentRequest struct {
	OrderID         string            `json:"orderId"`
	Priority        delivery.Priority `json:"priority"`
	CustomerName    string            `json:"customerName,omitempty"`
	DeliveryAddress string            `json:"deliveryAddress,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

type assignRequest struct {
	DeliveryPersonID      string     `json:"deliveryPersonId,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

// ListPersons reads /delivery/persons.
func (d *DeliveryClient) ListPersons(ctx context.Context) ([]delivery.Person, error) {
	var out []delivery.Person
	if err := d.c.do(ctx, http.MethodGet, d.c.api("delivery", "persons"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePersonStatus patches {status} to /delivery/persons/{id}/status.
func (d *DeliveryClient) UpdatePersonStatus(
	ctx context.Context,
	id string,
	status delivery.PersonStatus,
) (delivery.Person, error) {
	var out delivery.Person
	err := d.c.do(ctx, http.MethodPatch, d.c.api("delivery", "persons", id, "status"), nil,
		statusRequest{Status: string(status)}, &out)
	return out, err
}

// ListAssignments reads /delivery/assignments with the filter as query parameters.
func (d *DeliveryClient) ListAssignments(ctx context.Context, filter ports.DeliveryFilter) ([]delivery.Assignment, error) {
	query := url.Values{}
	setIf(query, "status", string(filter.Status))
	setIf(query, "deliveryPersonId", filter.DeliveryPersonID)
	setIf(query, "priority", string(filter.Priority))
	setIf(query, "search", filter.Search)

	var out []delivery.Assignment
	if err := d.c.do(ctx, http.MethodGet, d.c.api("delivery", "assignments"), query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAssignment posts a draft to /delivery/assignments.
func (d *DeliveryClient) CreateAssignment(ctx context.Context, draft delivery.Assignment) (delivery.Assignment, error) {
	req := createAssignmentRequest{
		OrderID:         draft.OrderID,
		Priority:        draft.Priority,
		CustomerName:    draft.CustomerName,
		DeliveryAddress: draft.DeliveryAddress,
		Notes:           draft.Notes,
	}
	var out delivery.Assignment
	err := d.c.do(ctx, http.MethodPost, d.c.api("delivery", "assignments"), nil, req, &out)
	return out, err
}

// UpdateAssignmentStatus patches {status} to /delivery/assignments/{id}/status.
func (d *DeliveryClient) UpdateAssignmentStatus(
	ctx context.Context,
	id string,
	status delivery.Status,
) (delivery.Assignment, error) {
	var out delivery.Assignment
	err := d.c.do(ctx, http.MethodPatch, d.c.api("delivery", "assignments", id, "status"), nil,
		statusRequest{Status: string(status)}, &out)
	return out, err
}

// Assign posts the request to /delivery/assignments/{id}/assign.
func (d *DeliveryClient) Assign(ctx context.Context, id string, req delivery.AssignRequest) (delivery.Assignment, error) {
	if err := req.Validate(); err != nil {
		return delivery.Assignment{}, err
	}
	body := assignRequest{
		DeliveryPersonID:      req.PersonID(),
		EstimatedDeliveryTime: req.EstimatedDeliveryTime(),
		Notes:                 req.Notes(),
	}
	var out delivery.Assignment
	err := d.c.do(ctx, http.MethodPost, d.c.api("delivery", "assignments", id, "assign"), nil, body, &out)
	return out, err
}

// Progress posts to /delivery/assignments/{id}/progress, moving the
// assignment one step along its happy path.
func (d *DeliveryClient) Progress(ctx context.Context, id string) (delivery.Assignment, error) {
	var out delivery.Assignment
	err := d.c.do(ctx, http.MethodPost, d.c.api("delivery", "assignments", id, "progress"), nil, nil, &out)
	return out, err
}

// Metrics reads /delivery/metrics.
func (d *DeliveryClient) Metrics(ctx context.Context) (delivery.Metrics, error) {
	var out delivery.Metrics
	err := d.c.do(ctx, http.MethodGet, d.c.api("delivery", "metrics"), nil, nil, &out)
	return out, err
}

func setIf(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
