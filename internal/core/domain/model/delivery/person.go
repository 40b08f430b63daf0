package delivery

import (
	"errors"
	"fmt"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/workflow"
	"restaurantops/internal/pkg/errs"
)

const (
	// MaxRating is the upper bound of the cumulative customer rating.
	MaxRating = 5.0
)

// Person is a delivery person. MaxConcurrentOrders is advisory display data:
// nothing enforces it when assigning.
type Person struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Phone               string           `json:"phone,omitempty"`
	Email               string           `json:"email,omitempty"`
	Status              PersonStatus     `json:"status"`
	VehicleType         VehicleType      `json:"vehicleType"`
	MaxConcurrentOrders int              `json:"maxConcurrentOrders"`
	Rating              float64          `json:"rating"`
	TotalDeliveries     int              `json:"totalDeliveries"`
	IsActive            bool             `json:"isActive"`
	Location            *kernel.Location `json:"currentLocation,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// IsEligible reports whether the person may take a new assignment:
// status is available and the active flag is set.
func (p *Person) IsEligible() bool {
	return p.Status == Available && p.IsActive
}

// IsWorking reports whether the person counts as active in metrics
// (available or busy).
func (p *Person) IsWorking() bool {
	return p.Status == Available || p.Status == Busy
}

// Key returns the person identifier.
func (p *Person) Key() string {
	return p.ID
}

// State returns the availability status.
func (p *Person) State() workflow.State {
	return p.Status
}

// Init assigns identity and the initial availability to a draft.
func (p *Person) Init(id string, now time.Time) {
	p.ID = id
	p.Status = PersonFlow.Initial()
	p.CreatedAt = now
	p.UpdatedAt = now
}

// Enter changes the availability status.
func (p *Person) Enter(status PersonStatus, now time.Time) {
	p.Status = status
	p.UpdatedAt = now
}

// Validate checks the person invariants.
func (p *Person) Validate() error {
	if p == nil {
		return errs.NewValueIsRequiredError("person")
	}

	var errList []error
	errList = append(errList,
		kernel.ValidateID("id", p.ID),
		kernel.ValidateID("name", p.Name),
		PersonFlow.Validate(p.Status),
		p.VehicleType.Validate(),
	)
	if p.Rating < 0 || p.Rating > MaxRating {
		errList = append(errList, errs.NewValueIsOutOfRangeError("rating", p.Rating, 0, MaxRating))
	}
	if p.MaxConcurrentOrders < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maxConcurrentOrders",
			fmt.Errorf("%d is negative", p.MaxConcurrentOrders)))
	}
	if p.TotalDeliveries < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("totalDeliveries",
			fmt.Errorf("%d is negative", p.TotalDeliveries)))
	}
	if p.Location != nil {
		errList = append(errList, p.Location.Validate())
	}
	return errors.Join(errList...)
}

// Clone returns a deep copy of the person.
func (p *Person) Clone() *Person {
	cp := *p
	cp.Location = kernel.ClonePtr(p.Location)
	return &cp
}
