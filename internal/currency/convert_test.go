package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var testRates = Rates{
	"eur": 1.0,
	"usd": 1.1,
	"gbp": 0.8567,
	"jpy": 160.0,
}

func observed() (*Normalizer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewNormalizer(zap.New(core)), logs
}

func TestConvert_SameCurrencyIdentity(t *testing.T) {
	n, logs := observed()

	for _, rates := range []Rates{nil, {}, testRates} {
		got := n.Convert(dec("12.345"), "EUR", "eur", rates)
		assert.Equal(t, "12.345", got.String(), "identity must not round")
	}
	assert.Zero(t, logs.Len(), "identity conversion never warns")
}

func TestConvert_CrossCurrency(t *testing.T) {
	n, _ := observed()

	tests := []struct {
		amount   string
		from, to string
		want     string
	}{
		{"100", "EUR", "USD", "110"},
		{"110", "USD", "EUR", "100"},
		{"10", "EUR", "GBP", "8.57"},
		{"1000", "JPY", "EUR", "6.25"},
		{"50", "usd", "gbp", "38.94"},
		{"0", "EUR", "USD", "0"},
		{"-10", "EUR", "USD", "-11"},
	}
	for _, tt := range tests {
		got := n.Convert(dec(tt.amount), tt.from, tt.to, testRates)
		assert.True(t, dec(tt.want).Equal(got), "Convert(%s %s->%s) = %s, want %s", tt.amount, tt.from, tt.to, got, tt.want)
	}
}

func TestConvert_RoundsHalfAwayFromZero(t *testing.T) {
	n, _ := observed()
	rates := Rates{"aaa": 1, "bbb": 1}

	assert.Equal(t, "0.13", n.Convert(dec("0.125"), "AAA", "BBB", rates).StringFixed(2))
	assert.Equal(t, "-0.13", n.Convert(dec("-0.125"), "AAA", "BBB", rates).StringFixed(2))
	assert.Equal(t, "0.12", n.Convert(dec("0.1249"), "AAA", "BBB", rates).StringFixed(2))
}

func TestConvert_MissingRatePassesThrough(t *testing.T) {
	n, logs := observed()

	got, ok := n.ConvertChecked(dec("42.123"), "EUR", "CHF", testRates)
	assert.False(t, ok)
	assert.Equal(t, "42.123", got.String(), "unconverted amount is returned as-is")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "CHF", entry.ContextMap()["to"])

	got = n.Convert(dec("5"), "XYZ", "EUR", testRates)
	assert.True(t, dec("5").Equal(got))
	assert.Equal(t, 2, logs.Len())
}

func TestConvert_UnusableRatesTreatedAsMissing(t *testing.T) {
	n, logs := observed()
	rates := Rates{"eur": 1, "zero": 0, "neg": -2}

	assert.True(t, dec("10").Equal(n.Convert(dec("10"), "EUR", "ZERO", rates)))
	assert.True(t, dec("10").Equal(n.Convert(dec("10"), "NEG", "EUR", rates)))
	assert.Equal(t, 2, logs.Len())
}

func TestConvertChecked_ReportsIdentityAsOK(t *testing.T) {
	n := NewNormalizer(nil)
	_, ok := n.ConvertChecked(dec("1"), "usd", "USD", nil)
	assert.True(t, ok)
}

func TestRates_NormalizeAndHas(t *testing.T) {
	r := Rates{" USD ": 1.1, "Eur": 1}.Normalize()
	assert.True(t, r.Has("usd"))
	assert.True(t, r.Has("EUR"))
	assert.False(t, r.Has("gbp"))
	assert.InDelta(t, 1.1, r["usd"], 1e-9)
}
