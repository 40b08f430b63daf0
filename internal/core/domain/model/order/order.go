package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// EstimatedPreparation is added to the creation time to estimate completion.
const EstimatedPreparation = 20 * time.Minute

// LineItem is one menu item on an order. Subtotal is derived from
// Quantity and UnitPrice by Order.Recalculate.
type LineItem struct {
	MenuItemID          string          `json:"menuItemId"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

// Order represents a customer order. It is the aggregate root for line items
// and the money breakdown.
//
// Order follows these invariants:
//   - Must have at least one line item with a positive quantity
//   - Subtotal is the sum of line subtotals, each quantity * unit price
//   - Total is always Subtotal + Tax + Tip
//   - Status is one of the states of Flow
//
// Fields are exported because orders travel as JSON between the backend, the
// stores and the HTTP API. Mutations go through the stores, which only change
// an order via Flow checked transitions.
type Order struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customerId"`
	CustomerName        string          `json:"customerName"`
	Type                Type            `json:"orderType"`
	Items               []LineItem      `json:"items"`
	Status              Status          `json:"status"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Tax                 decimal.Decimal `json:"tax"`
	Tip                 decimal.Decimal `json:"tip"`
	Total               decimal.Decimal `json:"total"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	EstimatedCompletion *time.Time      `json:"estimatedCompletionTime,omitempty"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
}

// NewOrder builds an order draft with computed totals. The draft has no
// identifier or status yet; a store assigns both on Create.
//
// Parameters:
//   - customerID, customerName: who placed the order (name is required)
//   - orderType: dine_in, takeout or delivery
//   - items: at least one line item; subtotals are recomputed
//   - tip: non-negative tip amount
//   - taxRate: rate applied to the subtotal, e.g. kernel.DefaultTaxRate
//
// Returns:
//   - Order: the draft with Subtotal, Tax and Total populated
//   - error: joined validation errors for every invalid parameter
//
// Example:
//
//	o, err := order.NewOrder("c-1", "Ada", order.Takeout, []order.LineItem{
//	    {MenuItemID: "m-1", Name: "Burger", Quantity: 2, UnitPrice: decimal.RequireFromString("12.99")},
//	}, decimal.RequireFromString("3.00"), kernel.DefaultTaxRate)
//	// o.Subtotal = 25.98, o.Tax = 2.60, o.Total = 31.58
func NewOrder(
	customerID, customerName string,
	orderType Type,
	items []LineItem,
	tip decimal.Decimal,
	taxRate decimal.Decimal,
) (Order, error) {
	o := Order{
		CustomerID:   customerID,
		CustomerName: customerName,
		Type:         orderType,
		Items:        append([]LineItem(nil), items...),
		Tip:          tip,
	}

	if err := errors.Join(
		kernel.ValidateID("customerName", customerName),
		orderType.Validate(),
		validateTip(tip),
		validateItems(o.Items),
	); err != nil {
		return Order{}, err
	}

	o.Recalculate(taxRate)
	return o, nil
}

// Recalculate derives every line subtotal, the order subtotal, tax and total.
// Tax is rounded half away from zero to cents.
func (o *Order) Recalculate(taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	for i := range o.Items {
		item := &o.Items[i]
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal
	o.Tax = kernel.ApplyRate(subtotal, taxRate)
	o.Total = o.Subtotal.Add(o.Tax).Add(o.Tip)
}

// Key returns the order identifier.
func (o *Order) Key() string {
	return o.ID
}

// State returns the current status.
func (o *Order) State() workflow.State {
	return o.Status
}

// Init assigns identity and the initial status to a draft. The estimated
// completion time is created + EstimatedPreparation.
func (o *Order) Init(id string, now time.Time) {
	o.ID = id
	o.Status = Flow.Initial()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.EstimatedCompletion = kernel.TimePtr(now.Add(EstimatedPreparation))
	o.CompletedAt = nil
}

// Enter moves the order to status and stamps CompletedAt on COMPLETED.
// The caller has already checked the edge against Flow.
func (o *Order) Enter(status Status, now time.Time) {
	o.Status = status
	o.UpdatedAt = now
	if status == Completed {
		o.CompletedAt = kernel.TimePtr(now)
	}
}

// IsTerminal reports whether the order is COMPLETED or CANCELLED.
func (o *Order) IsTerminal() bool {
	return Flow.IsTerminal(o.Status)
}

// Validate checks the order invariants.
//
// Returns:
//   - nil if the order is consistent
//   - joined errors describing every violated invariant
func (o *Order) Validate() error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}

	return errors.Join(
		kernel.ValidateID("id", o.ID),
		Flow.Validate(o.Status),
		o.Type.Validate(),
		validateTip(o.Tip),
		validateItems(o.Items),
		o.validateTotals(),
	)
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]LineItem(nil), o.Items...)
	cp.EstimatedCompletion = kernel.ClonePtr(o.EstimatedCompletion)
	cp.CompletedAt = kernel.ClonePtr(o.CompletedAt)
	return &cp
}

func (o *Order) validateTotals() error {
	subtotal := decimal.Zero
	for i, item := range o.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !line.Equal(item.Subtotal) {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].subtotal", i),
				fmt.Errorf("%s is not %d x %s", item.Subtotal, item.Quantity, item.UnitPrice))
		}
		subtotal = subtotal.Add(line)
	}
	if !subtotal.Equal(o.Subtotal) {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%s is not the sum of line subtotals %s", o.Subtotal, subtotal))
	}
	if want := o.Subtotal.Add(o.Tax).Add(o.Tip); !want.Equal(o.Total) {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s is not subtotal + tax + tip = %s", o.Total, want))
	}
	return nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var errList []error
	for i, item := range items {
		if strings.TrimSpace(item.MenuItemID) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].menuItemId", i)))
		}
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
		if item.UnitPrice.IsNegative() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].unitPrice", i), fmt.Errorf("%s is negative", item.UnitPrice)))
		}
	}
	return errors.Join(errList...)
}

func validateTip(tip decimal.Decimal) error {
	if tip.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("tip", fmt.Errorf("%s is negative", tip))
	}
	return nil
}

func errInvalidType(t Type) error {
	return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", t))
}
