package enums

import "fmt"

// DeliveryType distinguishes one drop-off from two.
type DeliveryType string

const (
	DeliveryTypeSingle   DeliveryType = "single"
	DeliveryTypeMultiple DeliveryType = "multiple"
)

var validDeliveryTypes = []DeliveryType{
	DeliveryTypeSingle,
	DeliveryTypeMultiple,
}

// IsValid reports whether the delivery type is recognized.
func (d DeliveryType) IsValid() bool {
	for _, candidate := range validDeliveryTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryType converts raw strings into DeliveryType.
func ParseDeliveryType(value string) (DeliveryType, error) {
	for _, candidate := range validDeliveryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery type %q", value)
}
