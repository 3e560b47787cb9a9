// Package currency converts and formats monetary amounts across currencies.
package currency

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Rates maps a lower-cased currency code to its rate against a fixed base
// currency (the base itself is 1.0).
type Rates map[string]float64

// Rate returns the rate for code. Missing, non-positive and non-finite
// rates are reported as absent.
func (r Rates) Rate(code string) (decimal.Decimal, bool) {
	v, ok := r[strings.ToLower(strings.TrimSpace(code))]
	if !ok || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v), true
}

// Has reports whether a usable rate exists for code.
func (r Rates) Has(code string) bool {
	_, ok := r.Rate(code)
	return ok
}

// Normalize returns a copy of r with lower-cased, trimmed keys.
func (r Rates) Normalize() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Normalizer converts amounts between currencies using a rate snapshot.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a Normalizer. A nil logger discards warnings.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Convert expresses amount, given in from, in the to currency.
//
// Same currencies (case-insensitive) return amount untouched. Otherwise the
// result is amount / rates[from] * rates[to] rounded to 2 places. If either
// rate is missing a warning is logged and amount is returned unconverted.
func (n *Normalizer) Convert(amount decimal.Decimal, from, to string, rates Rates) decimal.Decimal {
	out, _ := n.ConvertChecked(amount, from, to, rates)
	return out
}

// ConvertChecked is Convert, additionally reporting false when a missing
// rate forced the amount through unconverted.
func (n *Normalizer) ConvertChecked(amount decimal.Decimal, from, to string, rates Rates) (decimal.Decimal, bool) {
	if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
		return amount, true
	}

	fromRate, okFrom := rates.Rate(from)
	toRate, okTo := rates.Rate(to)
	if !okFrom || !okTo {
		n.logger.Warn("exchange rate missing, amount left unconverted",
			zap.String("from", strings.ToUpper(from)),
			zap.String("to", strings.ToUpper(to)),
			zap.String("amount", amount.String()),
			zap.Bool("from_rate_found", okFrom),
			zap.Bool("to_rate_found", okTo),
		)
		return amount, false
	}

	return amount.Div(fromRate).Mul(toRate).Round(2), true
}
