package enums

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code accepted for catalog prices and orders.
type Currency string

const (
	CurrencySAR Currency = "SAR"
	CurrencyAED Currency = "AED"
	CurrencyUSD Currency = "USD"

	// DefaultCurrency applies to draft orders when checkout names none.
	DefaultCurrency = CurrencySAR
)

var validCurrencies = map[Currency]struct{}{
	CurrencySAR: {},
	CurrencyAED: {},
	CurrencyUSD: {},
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	_, ok := validCurrencies[c]
	return ok
}

// ParseCurrency accepts any casing and surrounding whitespace. Blank input
// yields DefaultCurrency.
func ParseCurrency(value string) (Currency, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return DefaultCurrency, nil
	}
	if c := Currency(value); c.IsValid() {
		return c, nil
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
