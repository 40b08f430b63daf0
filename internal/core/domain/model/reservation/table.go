package reservation

import (
	"fmt"

	"restaurantops/internal/pkg/errs"
)

// Table is a dining table in the reservation pool.
type Table struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

// Fits reports whether the table is active and seats partySize guests.
func (t Table) Fits(partySize int) bool {
	return t.IsActive && t.Capacity >= partySize
}

// Validate checks the table has an identifier and a positive capacity.
func (t Table) Validate() error {
	if t.ID == "" {
		return errs.NewValueIsRequiredError("tableId")
	}
	if t.Capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", t.Capacity))
	}
	return nil
}
