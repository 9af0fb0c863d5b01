package enums

import "fmt"

// AvailabilityStatus describes whether a catalog product can be ordered.
type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "available"
	AvailabilityOutOfStock   AvailabilityStatus = "out_of_stock"
	AvailabilityDiscontinued AvailabilityStatus = "discontinued"
)

var validAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityAvailable,
	AvailabilityOutOfStock,
	AvailabilityDiscontinued,
}

// String implements fmt.Stringer.
func (a AvailabilityStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AvailabilityStatus.
func (a AvailabilityStatus) IsValid() bool {
	for _, candidate := range validAvailabilityStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAvailabilityStatus converts raw input into an AvailabilityStatus.
func ParseAvailabilityStatus(value string) (AvailabilityStatus, error) {
	for _, candidate := range validAvailabilityStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability status %q", value)
}
