package reservation

import (
	"errors"
	"strings"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/pkg/guard"
)

// ErrApprovalIsNotConstructed is returned when an Approval was not built by NewApproval.
var ErrApprovalIsNotConstructed = errors.New("approval must be created via NewApproval")

// Approval is an administrator's decision to confirm a pending reservation,
// optionally seating it at a table.
type Approval struct {
	approverID string
	tableID    *string
	adminNotes string
	guard      guard.ConstructorGuard
}

// NewApproval validates and creates an Approval.
//
// Parameters:
//   - approverID: the administrator confirming the reservation (required)
//   - tableID: optional table to hold; empty means no table assignment
//   - adminNotes: optional free text stored on the reservation
func NewApproval(approverID, tableID, adminNotes string) (Approval, error) {
	if err := kernel.ValidateID("approverId", approverID); err != nil {
		return Approval{}, err
	}
	return Approval{
		approverID: approverID,
		tableID:    kernel.StringPtr(strings.TrimSpace(tableID)),
		adminNotes: adminNotes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the approval was built by NewApproval.
func (a Approval) Validate() error {
	return a.guard.Validate(ErrApprovalIsNotConstructed)
}

func (a Approval) ApproverID() string {
	return a.approverID
}

// TableID returns the requested table, or nil when none was requested.
func (a Approval) TableID() *string {
	return kernel.ClonePtr(a.tableID)
}

func (a Approval) AdminNotes() string {
	return a.adminNotes
}
