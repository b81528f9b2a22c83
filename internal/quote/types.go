package quote

import "github.com/OmerAlfiel/Shahen-website/pkg/enums"

const (
	// MinQuantity and MaxQuantity bound the number of trucks priced per request.
	MinQuantity = 1
	MaxQuantity = 99

	// PlaceholderETAMinutes is returned for every quote until a distance
	// based ETA exists. No geocoding happens anywhere in the pipeline.
	PlaceholderETAMinutes = 10
)

// Request is a validated, normalized quote request. It lives for a single
// estimate and is never persisted.
type Request struct {
	DeliveryType   enums.DeliveryType
	PickupLocation string
	DropLocation1  string
	// DropLocation2 is only kept for multiple deliveries.
	DropLocation2 string
	TruckLabel    string
	// Quantity is already clamped into [MinQuantity, MaxQuantity].
	Quantity  int
	DateISO   string
	TimeLabel string
	LoadType  string
	// LoadQuantity and LoadExact refine the load type but are not priced.
	LoadQuantity *float64
	LoadExact    string
	// InsuranceValue is the declared cargo value; zero when absent or negative.
	InsuranceValue float64
	Language       enums.Language
}

// BreakdownItem is one labeled additive contribution to an estimate.
type BreakdownItem struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// Estimate is the itemized, non-binding price for a Request.
type Estimate struct {
	Estimate   int             `json:"estimate"`
	Currency   enums.Currency  `json:"currency"`
	Breakdown  []BreakdownItem `json:"breakdown"`
	ETAMinutes int             `json:"etaMinutes"`
}

// ClampQuantity coerces a truck count into [MinQuantity, MaxQuantity].
func ClampQuantity(quantity int) int {
	return max(MinQuantity, min(quantity, MaxQuantity))
}
