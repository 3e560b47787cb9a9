package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/model"
)

// tally accumulates what each known participant paid and what their share was.
type tally struct {
	ids   []string
	paid  map[string]decimal.Decimal
	share map[string]decimal.Decimal
}

func (t *tally) balance(id string) decimal.Decimal {
	return t.paid[id].Sub(t.share[id])
}

func (t *tally) known(id string) bool {
	_, ok := t.paid[id]
	return ok
}

func (c *Calculator) tally(expenses []model.Expense, participants []model.Participant, target string, rates currency.Rates) *tally {
	t := &tally{
		paid:  make(map[string]decimal.Decimal, len(participants)),
		share: make(map[string]decimal.Decimal, len(participants)),
	}
	for _, p := range participants {
		if t.known(p.ID) {
			continue
		}
		t.ids = append(t.ids, p.ID)
		t.paid[p.ID] = decimal.Zero
		t.share[p.ID] = decimal.Zero
	}

	for _, e := range expenses {
		involved := e.EffectiveInvolved(t.ids)
		if len(involved) == 0 {
			continue
		}

		amount := c.normalizer.Convert(e.Amount, e.EffectiveCurrency(), target, rates)
		split := amount.Div(decimal.NewFromInt(int64(len(involved))))

		// References to removed participants are dropped without error.
		if t.known(e.Payer) {
			t.paid[e.Payer] = t.paid[e.Payer].Add(amount)
		}
		for _, id := range involved {
			if t.known(id) {
				t.share[id] = t.share[id].Add(split)
			}
		}
	}
	return t
}
