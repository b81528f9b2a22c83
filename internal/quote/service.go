package quote

import "github.com/OmerAlfiel/Shahen-website/pkg/enums"

// Service prices quote requests.
type Service interface {
	Estimate(req Request) Estimate
}

type service struct {
	classify func(label string) int
	rules    []Rule
}

// NewService builds a quote service. With no rules it evaluates DefaultRules.
// The service holds no mutable state and is safe for concurrent use.
func NewService(rules ...Rule) Service {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &service{
		classify: ClassifyTruck,
		rules:    append([]Rule(nil), rules...),
	}
}

// Estimate classifies the truck once, then evaluates every rule in order.
// The total is always the sum of the breakdown amounts.
func (s *service) Estimate(req Request) Estimate {
	req.Quantity = ClampQuantity(req.Quantity)
	base := s.classify(req.TruckLabel)

	breakdown := make([]BreakdownItem, 0, len(s.rules))
	total := 0
	for _, rule := range s.rules {
		item, ok := rule(req, base)
		if !ok {
			continue
		}
		breakdown = append(breakdown, item)
		total += item.Amount
	}

	return Estimate{
		Estimate:   total,
		Currency:   enums.CurrencySAR,
		Breakdown:  breakdown,
		ETAMinutes: PlaceholderETAMinutes,
	}
}
