package kernel

import (
	"errors"
	"fmt"

	"restaurantops/internal/pkg/errs"
)

const (
	// MinLatitude and MaxLatitude bound a valid latitude in degrees.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	// MinLongitude and MaxLongitude bound a valid longitude in degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Location is the last known position of a delivery person. It is a static
// snapshot: nothing in the system tracks or updates it in real time.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: Location(40.712800,-74.006000)
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewLocation creates a Location after checking both coordinates are in range.
//
// Parameters:
//   - lat: latitude in degrees, between MinLatitude and MaxLatitude inclusive
//   - lng: longitude in degrees, between MinLongitude and MaxLongitude inclusive
//
// Returns:
//   - Location: a valid location
//   - error: ValueIsOutOfRangeError for each coordinate out of bounds
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{Latitude: lat, Longitude: lng}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks both coordinates. Locations decoded from JSON are validated
// here since they bypass NewLocation.
func (l Location) Validate() error {
	var latErr, lngErr error
	if l.Latitude < MinLatitude || l.Latitude > MaxLatitude {
		latErr = errs.NewValueIsOutOfRangeError("latitude", l.Latitude, MinLatitude, MaxLatitude)
	}
	if l.Longitude < MinLongitude || l.Longitude > MaxLongitude {
		lngErr = errs.NewValueIsOutOfRangeError("longitude", l.Longitude, MinLongitude, MaxLongitude)
	}
	return errors.Join(latErr, lngErr)
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.Latitude, l.Longitude)
}
