package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
)

// Flat surcharges in SAR.
const (
	AdditionalDropOffFee = 50
	EveningSurcharge     = 30
	HeavyLoadSurcharge   = 40
	PerishableSurcharge  = 20
	InsuranceCap         = 200
)

var insuranceRate = decimal.New(1, -2)

// Rule inspects a request and optionally contributes one breakdown line.
// basePerTruck is the classifier result for the request's truck label.
type Rule func(req Request, basePerTruck int) (BreakdownItem, bool)

// DefaultRules is the evaluation order; it is also the breakdown display order.
var DefaultRules = []Rule{
	BaseFareRule,
	AdditionalDropOffRule,
	EveningRule,
	HeavyLoadRule,
	PerishableRule,
	InsuranceRule,
}

var (
	eveningMarkers    = []string{"6:00 pm", "8:00 pm", "pm"}
	heavyLoadMarkers  = []string{"مواد بناء", "construction", "building"}
	perishableMarkers = []string{"مواد غذائية", "food"}
)

func BaseFareRule(req Request, basePerTruck int) (BreakdownItem, bool) {
	qty := ClampQuantity(req.Quantity)
	noun := "truck"
	if qty > 1 {
		noun = "trucks"
	}
	return BreakdownItem{
		Label:  fmt.Sprintf("Base fare (%d %s)", qty, noun),
		Amount: basePerTruck * qty,
	}, true
}

func AdditionalDropOffRule(req Request, _ int) (BreakdownItem, bool) {
	if req.DeliveryType != enums.DeliveryTypeMultiple {
		return BreakdownItem{}, false
	}
	return BreakdownItem{Label: "Additional drop-off", Amount: AdditionalDropOffFee}, true
}

func EveningRule(req Request, _ int) (BreakdownItem, bool) {
	if !containsAny(strings.ToLower(req.TimeLabel), eveningMarkers) {
		return BreakdownItem{}, false
	}
	return BreakdownItem{Label: "Evening time surcharge", Amount: EveningSurcharge}, true
}

func HeavyLoadRule(req Request, _ int) (BreakdownItem, bool) {
	if !containsAny(strings.ToLower(req.LoadType), heavyLoadMarkers) {
		return BreakdownItem{}, false
	}
	return BreakdownItem{Label: "Heavy load handling", Amount: HeavyLoadSurcharge}, true
}

func PerishableRule(req Request, _ int) (BreakdownItem, bool) {
	if !containsAny(strings.ToLower(req.LoadType), perishableMarkers) {
		return BreakdownItem{}, false
	}
	return BreakdownItem{Label: "Perishable handling", Amount: PerishableSurcharge}, true
}

// InsuranceRule charges 1% of the declared value, rounded half-up to whole
// SAR and capped at InsuranceCap. A small declared value can round to a
// zero-amount line; the line still appears.
func InsuranceRule(req Request, _ int) (BreakdownItem, bool) {
	if req.InsuranceValue <= 0 {
		return BreakdownItem{}, false
	}
	return BreakdownItem{Label: "Insurance", Amount: InsuranceFee(req.InsuranceValue)}, true
}

// InsuranceFee returns min(InsuranceCap, round(value * 0.01)) for value > 0.
func InsuranceFee(value float64) int {
	if value <= 0 {
		return 0
	}
	fee := decimal.NewFromFloat(value).Mul(insuranceRate).Round(0)
	if cap := decimal.NewFromInt(InsuranceCap); fee.GreaterThan(cap) {
		return InsuranceCap
	}
	return int(fee.IntPart())
}
