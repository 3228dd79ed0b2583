package domain

import (
	"fmt"
	"slices"
	"strings"
)

var currencyAliases = map[string]string{
	"EURO":  "EUR",
	"EUROS": "EUR",
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if alias, ok := currencyAliases[code]; ok {
		return alias
	}
	return code
}

// ParseCurrencyOptions splits a comma-separated option list into unique,
// normalized codes. An empty list falls back to the default currency.
func ParseCurrencyOptions(raw, defaultCurrency string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		code := NormalizeCurrency(part)
		if code == "" || slices.Contains(out, code) {
			continue
		}
		out = append(out, code)
	}
	if len(out) == 0 {
		if def := NormalizeCurrency(defaultCurrency); def != "" {
			out = append(out, def)
		}
	}
	return out
}

// ResolveCurrency picks the settlement currency for the event. An empty
// requested value selects the event default.
func (e Event) ResolveCurrency(requested string) (string, error) {
	currency := NormalizeCurrency(requested)
	if currency == "" {
		currency = NormalizeCurrency(e.DefaultCurrency)
	}
	allowed := ParseCurrencyOptions(e.CurrencyOptions, e.DefaultCurrency)
	if currency == "" || !slices.Contains(allowed, currency) {
		return "", fmt.Errorf("%w: %q is not accepted (allowed: %s)", ErrCurrencyNotAllowed, currency, strings.Join(allowed, ", "))
	}
	return currency, nil
}
