package delivery

import (
	"errors"
	"strings"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/pkg/guard"
)

// ErrAssignRequestIsNotConstructed is returned when an AssignRequest was not built by NewAssignRequest.
var ErrAssignRequestIsNotConstructed = errors.New("assign request must be created via NewAssignRequest")

// AssignRequest asks for a delivery person to be put on an assignment.
//
// An empty person id lets the matcher pick the best eligible person. A nil
// estimated delivery time lets the matcher derive the earliest allowed one.
type AssignRequest struct {
	personID  string
	estimated *time.Time
	notes     string
	guard     guard.ConstructorGuard
}

// NewAssignRequest creates an AssignRequest.
//
// Parameters:
//   - personID: requested delivery person, or "" for automatic selection
//   - estimated: requested estimated delivery time, or nil
//   - notes: optional dispatcher notes
func NewAssignRequest(personID string, estimated *time.Time, notes string) AssignRequest {
	return AssignRequest{
		personID:  strings.TrimSpace(personID),
		estimated: kernel.ClonePtr(estimated),
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate reports whether the request was built by NewAssignRequest.
func (r AssignRequest) Validate() error {
	return r.guard.Validate(ErrAssignRequestIsNotConstructed)
}

func (r AssignRequest) PersonID() string {
	return r.personID
}

func (r AssignRequest) EstimatedDeliveryTime() *time.Time {
	return kernel.ClonePtr(r.estimated)
}

func (r AssignRequest) Notes() string {
	return r.notes
}
