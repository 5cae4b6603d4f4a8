package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

const (
	// LatitudeMin and LatitudeMax bound valid latitude values in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound valid longitude values in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation,
// NewRawLocation, or ParseLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation, NewRawLocation, or ParseLocation")

// Location is the delivery destination of an order. It holds either a
// validated latitude/longitude pair (shared from the customer's chat client)
// or a free-form address string when no coordinates are available.
//
// Location is an immutable value object; the zero value is invalid and fails
// Validate.
//
// Example:
//
//	loc, err := kernel.NewLocation(41.311, 69.2797)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Output: 41.31100,69.27970
type Location struct {
	lat float64
	lng float64
	raw string

	guard guard.ConstructorGuard
}

// NewLocation creates a Location from a latitude/longitude pair.
// Returns an error if either coordinate is outside the valid bounds.
func NewLocation(lat, lng float64) (Location, error) {
	if lat < LatitudeMin || lat > LatitudeMax {
		return Location{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	if lng < LongitudeMin || lng > LongitudeMax {
		return Location{}, errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	return Location{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

// NewRawLocation creates a Location from a free-form address string.
// Returns an error if the address is empty.
func NewRawLocation(address string) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, errs.NewValueIsRequiredError("address")
	}

	return Location{raw: address, guard: guard.NewConstructorGuard()}, nil
}

// ParseLocation restores a Location from its persisted string form.
// A "lat,lng" pair is parsed into coordinates; anything else is kept as a
// raw address.
func ParseLocation(s string) (Location, error) {
	if lat, lng, ok := splitCoordinates(s); ok {
		return NewLocation(lat, lng)
	}
	return NewRawLocation(s)
}

func splitCoordinates(s string) (float64, float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// Validate ensures the Location was created through a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// HasCoordinates reports whether the location carries a lat/lng pair
// (as opposed to a free-form address).
func (l Location) HasCoordinates() bool {
	return l.raw == ""
}

// Lat returns the latitude in degrees. Only meaningful when HasCoordinates.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees. Only meaningful when HasCoordinates.
func (l Location) Lng() float64 {
	return l.lng
}

// IsEqual compares two locations by value.
func (l Location) IsEqual(other Location) bool {
	return l.String() == other.String()
}

// String returns the persisted form: "lat,lng" with five decimal places,
// or the raw address.
func (l Location) String() string {
	if l.raw != "" {
		return l.raw
	}
	return fmt.Sprintf("%.5f,%.5f", l.lat, l.lng)
}
