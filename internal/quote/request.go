package quote

import (
	"math"

	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
	"github.com/OmerAlfiel/Shahen-website/pkg/types"
)

// EstimateRequest is the wire shape of POST /api/quote/estimate. Field order
// is the order violations are reported in.
type EstimateRequest struct {
	DeliveryType   string            `json:"deliveryType" validate:"oneof=single multiple"`
	PickupLocation string            `json:"pickupLocation" validate:"required"`
	DropLocation1  string            `json:"dropLocation1" validate:"required"`
	DropLocation2  string            `json:"dropLocation2" validate:"required_if=DeliveryType multiple"`
	TruckLabel     string            `json:"truckLabel" validate:"required"`
	Quantity       types.LooseNumber `json:"quantity"`
	DateISO        string            `json:"dateISO" validate:"required"`
	TimeLabel      string            `json:"timeLabel" validate:"required"`
	LoadType       string            `json:"loadType" validate:"required"`
	LoadQuantity   types.LooseNumber `json:"loadQuantity"`
	LoadExact      string            `json:"loadExact"`
	InsuranceValue types.LooseNumber `json:"insuranceValue"`
	Language       string            `json:"language"`
}

// Normalize converts a structurally valid request into the priced form.
// Missing or non-numeric quantities become 1, fractions truncate, and the
// result is clamped into [MinQuantity, MaxQuantity].
func (r EstimateRequest) Normalize() Request {
	deliveryType := enums.DeliveryType(r.DeliveryType)

	req := Request{
		DeliveryType:   deliveryType,
		PickupLocation: r.PickupLocation,
		DropLocation1:  r.DropLocation1,
		TruckLabel:     r.TruckLabel,
		Quantity:       normalizeQuantity(r.Quantity),
		DateISO:        r.DateISO,
		TimeLabel:      r.TimeLabel,
		LoadType:       r.LoadType,
		LoadExact:      r.LoadExact,
		Language:       enums.NormalizeLanguage(r.Language),
	}
	if deliveryType == enums.DeliveryTypeMultiple {
		req.DropLocation2 = r.DropLocation2
	}
	if r.LoadQuantity.Valid && r.LoadQuantity.Value != 0 {
		v := r.LoadQuantity.Value
		req.LoadQuantity = &v
	}
	if v, ok := r.InsuranceValue.Positive(); ok {
		req.InsuranceValue = v
	}
	return req
}

func normalizeQuantity(n types.LooseNumber) int {
	if !n.Valid {
		return MinQuantity
	}
	v := math.Trunc(n.Value)
	switch {
	case v < MinQuantity:
		return MinQuantity
	case v > MaxQuantity:
		return MaxQuantity
	}
	return int(v)
}
