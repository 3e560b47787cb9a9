package settlement

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/model"
)

var propertyRates = currency.Rates{"eur": 1, "usd": 1.08, "gbp": 0.85, "jpy": 161}

// randomGroup builds a group and expenses. With exactSplits, every amount is
// a whole number of cents per involved participant so no rounding occurs.
func randomGroup(r *rand.Rand, exactSplits bool) ([]model.Participant, []model.Expense) {
	n := 2 + r.Intn(7)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}

	currencies := []string{"EUR", "USD", "GBP", "JPY"}
	count := r.Intn(25)
	expenses := make([]model.Expense, 0, count)
	for i := 0; i < count; i++ {
		var involved []string
		for _, id := range ids {
			if r.Intn(2) == 0 {
				involved = append(involved, id)
			}
		}

		size := len(involved)
		if size == 0 {
			size = n
		}

		var amount decimal.Decimal
		code := "EUR"
		if exactSplits {
			amount = decimal.New(int64(1+r.Intn(20000))*int64(size), -2)
		} else {
			amount = decimal.New(int64(1+r.Intn(500000)), -2)
			code = currencies[r.Intn(len(currencies))]
		}

		expenses = append(expenses, model.Expense{
			ID:       fmt.Sprintf("e%d", i),
			Amount:   amount,
			Currency: code,
			Payer:    ids[r.Intn(n)],
			Involved: involved,
		})
	}
	return people(ids...), expenses
}

func TestProperty_ZeroSum(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := NewCalculator(nil)
	tolerance := decimal.New(1, -9)

	for iter := 0; iter < 200; iter++ {
		ps, es := randomGroup(r, false)
		sum := decimal.Zero
		for _, b := range c.Balances(es, ps, "EUR", propertyRates) {
			sum = sum.Add(b)
		}
		assert.True(t, sum.Abs().LessThan(tolerance), "iteration %d: balances sum to %s", iter, sum)
	}
}

func TestProperty_SettlementCompleteness(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	c := NewCalculator(nil)
	cent := decimal.New(1, -2)

	for iter := 0; iter < 200; iter++ {
		ps, es := randomGroup(r, true)
		balances := c.Balances(es, ps, "EUR", nil)

		for _, tr := range c.CalculateDebts(es, ps, "EUR", nil) {
			balances[tr.From] = balances[tr.From].Add(tr.Amount)
			balances[tr.To] = balances[tr.To].Sub(tr.Amount)
		}
		for id, b := range balances {
			assert.True(t, b.Abs().LessThanOrEqual(cent), "iteration %d: %s left with %s", iter, id, b)
		}
	}
}

func TestProperty_ResiduesStayWithinRounding(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	c := NewCalculator(nil)

	for iter := 0; iter < 200; iter++ {
		ps, es := randomGroup(r, false)
		balances := c.Balances(es, ps, "EUR", propertyRates)

		for _, tr := range c.CalculateDebts(es, ps, "EUR", propertyRates) {
			balances[tr.From] = balances[tr.From].Add(tr.Amount)
			balances[tr.To] = balances[tr.To].Sub(tr.Amount)
		}

		// Rounding at classification leaves up to a cent and a half per participant,
		// and those residues collect on whoever is matched last.
		limit := decimal.New(int64(2*len(ps)), -2)
		for id, b := range balances {
			assert.True(t, b.Abs().LessThanOrEqual(limit), "iteration %d: %s left with %s", iter, id, b)
		}
	}
}

func TestProperty_NoSelfTransactionsAndPositiveAmounts(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	c := NewCalculator(nil)

	for iter := 0; iter < 200; iter++ {
		ps, es := randomGroup(r, false)
		for _, tr := range c.CalculateDebts(es, ps, "EUR", propertyRates) {
			assert.NotEqual(t, tr.From, tr.To, "iteration %d", iter)
			assert.True(t, tr.Amount.IsPositive(), "iteration %d: amount %s", iter, tr.Amount)
			assert.True(t, tr.Amount.Equal(tr.Amount.Round(2)), "iteration %d: amount %s has more than 2 decimals", iter, tr.Amount)
			assert.Equal(t, "EUR", tr.Currency)
		}
	}
}

func TestProperty_TransactionCountBound(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	c := NewCalculator(nil)

	for iter := 0; iter < 200; iter++ {
		ps, es := randomGroup(r, false)

		debtors, creditors := 0, 0
		for _, b := range c.Balances(es, ps, "EUR", propertyRates) {
			rounded := b.Round(2)
			switch {
			case rounded.LessThan(epsilon.Neg()):
				debtors++
			case rounded.GreaterThan(epsilon):
				creditors++
			}
		}

		bound := debtors + creditors - 1
		if bound < 0 {
			bound = 0
		}
		got := c.CalculateDebts(es, ps, "EUR", propertyRates)
		assert.LessOrEqual(t, len(got), bound, "iteration %d", iter)
	}
}

func TestProperty_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	c := NewCalculator(nil)

	for iter := 0; iter < 50; iter++ {
		ps, es := randomGroup(r, false)
		first := c.CalculateDebts(es, ps, "EUR", propertyRates)
		second := c.CalculateDebts(es, ps, "EUR", propertyRates)
		require.Equal(t, first, second, "iteration %d", iter)
	}
}

func TestCalculateDebts_ConcurrentCallers(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c := NewCalculator(nil)

	type job struct {
		ps   []model.Participant
		es   []model.Expense
		want []model.Transaction
	}
	jobs := make([]job, 16)
	for i := range jobs {
		ps, es := randomGroup(r, false)
		jobs[i] = job{ps: ps, es: es, want: c.CalculateDebts(es, ps, "EUR", propertyRates)}
	}

	results := make([][]model.Transaction, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.CalculateDebts(jobs[i].es, jobs[i].ps, "EUR", propertyRates)
		}(i)
	}
	wg.Wait()

	for i := range jobs {
		assert.Equal(t, jobs[i].want, results[i], "job %d", i)
	}
}
