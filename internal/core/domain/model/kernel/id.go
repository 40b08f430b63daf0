package kernel

import (
	"strings"

	"restaurantops/internal/pkg/errs"

	"github.com/google/uuid"
)

// NewID generates a new random identifier (UUID version 4).
//
// Example:
//
//	id := kernel.NewID() // e.g. "550e8400-e29b-41d4-a716-446655440000"
func NewID() string {
	return uuid.NewString()
}

// ValidateID rejects blank identifiers. Any other string is accepted: the
// backend may use numeric or UUID identifiers.
//
// Parameters:
//   - paramName: name reported in the validation error
//   - id: the identifier to check
//
// Returns:
//   - nil if id contains a non-space character
//   - ValueIsRequiredError otherwise
func ValidateID(paramName, id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

// IsUUID reports whether id is a canonical UUID, i.e. was most likely
// generated locally rather than by the backend.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
