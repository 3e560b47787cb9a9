// Package settlement turns shared expenses into the payments that settle them.
package settlement

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/model"
)

// epsilon is the band around zero treated as settled (one cent).
var epsilon = decimal.New(1, -2)

// Calculator computes balances and settlement plans. It has no mutable state;
// every call recomputes from the expenses it is given.
type Calculator struct {
	normalizer *currency.Normalizer
}

// NewCalculator creates a Calculator. A nil normalizer gets a silent default.
func NewCalculator(normalizer *currency.Normalizer) *Calculator {
	if normalizer == nil {
		normalizer = currency.NewNormalizer(nil)
	}
	return &Calculator{normalizer: normalizer}
}

type party struct {
	id     string
	amount decimal.Decimal
}

// CalculateDebts returns the transactions that settle every balance, in the
// order they should be displayed.
//
// Debtors are matched most-negative first against creditors most-positive
// first. Balances within one cent of zero count as settled.
func (c *Calculator) CalculateDebts(expenses []model.Expense, participants []model.Participant, target string, rates currency.Rates) []model.Transaction {
	t := c.tally(expenses, participants, target, rates)

	var debtors, creditors []party
	for _, id := range t.ids {
		rounded := t.balance(id).Round(2)
		switch {
		case rounded.LessThan(epsilon.Neg()):
			debtors = append(debtors, party{id: id, amount: rounded})
		case rounded.GreaterThan(epsilon):
			creditors = append(creditors, party{id: id, amount: rounded})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount.LessThan(debtors[j].amount) })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount.GreaterThan(creditors[j].amount) })

	code := strings.ToUpper(strings.TrimSpace(target))
	txs := []model.Transaction{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d := &debtors[i]
		cr := &creditors[j]

		amount := decimal.Min(d.amount.Abs(), cr.amount).Round(2)
		if amount.IsPositive() {
			txs = append(txs, model.Transaction{From: d.id, To: cr.id, Amount: amount, Currency: code})
		}

		d.amount = d.amount.Add(amount)
		cr.amount = cr.amount.Sub(amount)

		if d.amount.Abs().LessThan(epsilon) {
			i++
		}
		if cr.amount.Abs().LessThan(epsilon) {
			j++
		}
	}
	return txs
}

// Balances returns every participant's unrounded net balance in target.
// Positive means the participant is owed money.
func (c *Calculator) Balances(expenses []model.Expense, participants []model.Participant, target string, rates currency.Rates) map[string]decimal.Decimal {
	t := c.tally(expenses, participants, target, rates)
	out := make(map[string]decimal.Decimal, len(t.ids))
	for _, id := range t.ids {
		out[id] = t.balance(id)
	}
	return out
}

// Summary is one participant's totals in the target currency.
type Summary struct {
	ParticipantID string
	Paid          decimal.Decimal
	Share         decimal.Decimal
	Balance       decimal.Decimal
}

// Summarize returns paid, share and balance per participant, in participant order.
func (c *Calculator) Summarize(expenses []model.Expense, participants []model.Participant, target string, rates currency.Rates) []Summary {
	t := c.tally(expenses, participants, target, rates)
	out := make([]Summary, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, Summary{
			ParticipantID: id,
			Paid:          t.paid[id],
			Share:         t.share[id],
			Balance:       t.balance(id),
		})
	}
	return out
}
