package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency applies to expenses recorded without a currency.
const DefaultCurrency = "EUR"

// Expense is a shared cost fronted by Payer and split equally among Involved.
type Expense struct {
	ID              string
	Date            time.Time
	Title           string
	Amount          decimal.Decimal
	Currency        string
	Payer           string
	Involved        []string // empty = every participant
	IsReimbursement bool
}

// EffectiveCurrency returns the upper-cased currency, or DefaultCurrency if unset.
func (e Expense) EffectiveCurrency() string {
	c := strings.TrimSpace(e.Currency)
	if c == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(c)
}

// EffectiveInvolved returns the participants the expense is split among.
// An empty Involved list means everyone in all.
func (e Expense) EffectiveInvolved(all []string) []string {
	if len(e.Involved) == 0 {
		return all
	}
	return e.Involved
}
