package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Info describes how a currency is displayed.
type Info struct {
	Code     string
	Symbol   string
	Decimals int
}

var known = map[string]Info{
	"EUR": {Code: "EUR", Symbol: "€", Decimals: 2},
	"USD": {Code: "USD", Symbol: "$", Decimals: 2},
	"GBP": {Code: "GBP", Symbol: "£", Decimals: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Decimals: 0},
	"KRW": {Code: "KRW", Symbol: "₩", Decimals: 0},
	"CNY": {Code: "CNY", Symbol: "¥", Decimals: 2},
	"INR": {Code: "INR", Symbol: "₹", Decimals: 2},
	"CHF": {Code: "CHF", Symbol: "CHF", Decimals: 2},
	"CAD": {Code: "CAD", Symbol: "CA$", Decimals: 2},
	"AUD": {Code: "AUD", Symbol: "A$", Decimals: 2},
	"NZD": {Code: "NZD", Symbol: "NZ$", Decimals: 2},
	"SEK": {Code: "SEK", Symbol: "kr", Decimals: 2},
	"NOK": {Code: "NOK", Symbol: "kr", Decimals: 2},
	"DKK": {Code: "DKK", Symbol: "kr", Decimals: 2},
	"PLN": {Code: "PLN", Symbol: "zł", Decimals: 2},
	"CZK": {Code: "CZK", Symbol: "Kč", Decimals: 2},
	"HUF": {Code: "HUF", Symbol: "Ft", Decimals: 0},
	"BRL": {Code: "BRL", Symbol: "R$", Decimals: 2},
	"MXN": {Code: "MXN", Symbol: "MX$", Decimals: 2},
	"TRY": {Code: "TRY", Symbol: "₺", Decimals: 2},
	"ISK": {Code: "ISK", Symbol: "kr", Decimals: 0},
}

// Languages that write the symbol after the number ("12,50 €").
var suffixLanguages = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pt": true,
	"sv": true, "nb": true, "da": true, "fi": true, "pl": true, "cs": true,
}

// Lookup returns display info for a currency code.
func Lookup(code string) (Info, bool) {
	info, ok := known[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// Symbol returns the display symbol for code, or the upper-cased code if unknown.
func Symbol(code string) string {
	if info, ok := Lookup(code); ok {
		return info.Symbol
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Decimals returns the native number of fraction digits for code (2 if unknown).
func Decimals(code string) int {
	if info, ok := Lookup(code); ok {
		return info.Decimals
	}
	return 2
}

// FormatAmount renders amount for display in the given locale (BCP 47 tag,
// e.g. "en-US", "de"). Unknown currencies render as "<amount> <CODE>".
func FormatAmount(amount decimal.Decimal, code, locale string) string {
	info, ok := Lookup(code)
	if !ok {
		return fallback(amount, code)
	}

	tag := parseLocale(locale)
	p := message.NewPrinter(tag)
	value, _ := amount.Abs().Round(int32(info.Decimals)).Float64()
	digits := p.Sprintf("%v", number.Decimal(value, number.Scale(info.Decimals)))

	sign := ""
	if amount.Round(int32(info.Decimals)).IsNegative() {
		sign = "-"
	}

	base, _ := tag.Base()
	if suffixLanguages[base.String()] {
		return sign + digits + " " + info.Symbol
	}
	return sign + joinSymbol(info.Symbol, digits)
}

// FormatAmountCompact renders amount with a fixed "." decimal separator and
// no grouping, independent of locale.
func FormatAmountCompact(amount decimal.Decimal, code string) string {
	info, ok := Lookup(code)
	if !ok {
		return fallback(amount, code)
	}

	rounded := amount.Round(int32(info.Decimals))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + joinSymbol(info.Symbol, rounded.Abs().StringFixed(int32(info.Decimals)))
}

func fallback(amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), strings.ToUpper(strings.TrimSpace(code)))
}

// joinSymbol separates letter-only symbols ("CHF", "kr") from the number.
func joinSymbol(symbol, digits string) string {
	for _, r := range symbol {
		if !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z') {
			return symbol + digits
		}
	}
	return symbol + " " + digits
}

func parseLocale(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
