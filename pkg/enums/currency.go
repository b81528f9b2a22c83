package enums

// Currency represents the monetary denomination of a quote.
type Currency string

// CurrencySAR is the only currency quotes are priced in.
const CurrencySAR Currency = "SAR"

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}
