package expenses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/model"
	"github.com/splitledger/splitledger/internal/settlement"
)

func TestReimbursement(t *testing.T) {
	tx := model.Transaction{From: "bob", To: "alice", Amount: dec("50"), Currency: "EUR"}
	e := Reimbursement(tx, date(2025, 2, 1))

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "bob", e.Payer)
	assert.Equal(t, []string{"alice"}, e.Involved)
	assert.True(t, dec("50").Equal(e.Amount))
	assert.Equal(t, "EUR", e.Currency)
	assert.True(t, e.IsReimbursement)
	assert.Equal(t, ReimbursementTitle, e.Title)
}

func TestReimbursements_SettleThePlan(t *testing.T) {
	participants := []model.Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	ledger := []model.Expense{
		{ID: "1", Amount: dec("120"), Currency: "EUR", Payer: "a"},
		{ID: "2", Amount: dec("45.50"), Currency: "EUR", Payer: "b", Involved: []string{"c", "d"}},
		{ID: "3", Amount: dec("9.99"), Currency: "EUR", Payer: "d", Involved: []string{"a", "b", "c"}},
	}

	calc := settlement.NewCalculator(nil)
	plan := calc.CalculateDebts(ledger, participants, "EUR", nil)
	require.NotEmpty(t, plan)

	ledger = append(ledger, Reimbursements(plan, date(2025, 2, 1))...)
	assert.Empty(t, calc.CalculateDebts(ledger, participants, "EUR", nil), "recording the plan settles the group")
}
