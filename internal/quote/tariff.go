package quote

import "strings"

// Base per-truck prices in SAR.
const (
	TariffDefault = 120
	TariffDina    = 120
	TariffLorry   = 180
	TariffDumper  = 260
	TariffFlatbed = 300
)

// tariffRule matches any of its keywords against the lowercased label and
// folds the current base price into a new one.
type tariffRule struct {
	keywords []string
	apply    func(base int) int
}

// Rules are evaluated in order and every match applies, so a later rule can
// override an earlier one. The dumper rule is a floor rather than an
// override: a flatbed dumper stays at the flatbed price.
var tariffRules = []tariffRule{
	{keywords: []string{"دينا", "dina", "diana"}, apply: setTariff(TariffDina)},
	{keywords: []string{"لوري", "lorry"}, apply: setTariff(TariffLorry)},
	{keywords: []string{"سطحة", "سطحه", "flat", "trailer", "تريلا"}, apply: setTariff(TariffFlatbed)},
	{keywords: []string{"قلاب", "dumper"}, apply: floorTariff(TariffDumper)},
}

// ClassifyTruck maps a free-text truck label (Arabic or English, any case)
// to a base price per truck. Unrecognized labels get TariffDefault.
func ClassifyTruck(label string) int {
	normalized := strings.ToLower(label)
	base := TariffDefault
	for _, rule := range tariffRules {
		if containsAny(normalized, rule.keywords) {
			base = rule.apply(base)
		}
	}
	return base
}

// TierName labels a base price for metrics.
func TierName(base int) string {
	switch base {
	case TariffFlatbed:
		return "flatbed"
	case TariffDumper:
		return "dumper"
	case TariffLorry:
		return "lorry"
	case TariffDefault:
		return "standard"
	}
	return "other"
}

func setTariff(price int) func(int) int {
	return func(int) int { return price }
}

func floorTariff(price int) func(int) int {
	return func(base int) int { return max(base, price) }
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
