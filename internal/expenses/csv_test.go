package expenses

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	expenses := []model.Expense{
		{
			ID:       "e1",
			Date:     date(2025, 1, 3),
			Title:    "Groceries, weekly",
			Amount:   dec("84.20"),
			Currency: "EUR",
			Payer:    "alice",
			Involved: []string{"alice", "bob"},
		},
		{
			ID:              "e2",
			Date:            date(2025, 1, 4),
			Title:           "Reimbursement",
			Amount:          dec("42.10"),
			Currency:        "EUR",
			Payer:           "bob",
			Involved:        []string{"alice"},
			IsReimbursement: true,
		},
		{
			ID:     "e3",
			Title:  "Dinner",
			Amount: dec("120"),
			Payer:  "bob",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))
	assert.True(t, strings.HasPrefix(buf.String(), "expense_id,"))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := range expenses {
		assert.Equal(t, expenses[i].ID, got[i].ID)
		assert.True(t, expenses[i].Date.Equal(got[i].Date), "date mismatch row %d", i)
		assert.Equal(t, expenses[i].Title, got[i].Title)
		assert.True(t, expenses[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, expenses[i].Currency, got[i].Currency)
		assert.Equal(t, expenses[i].Payer, got[i].Payer)
		assert.Equal(t, expenses[i].Involved, got[i].Involved)
		assert.Equal(t, expenses[i].IsReimbursement, got[i].IsReimbursement)
	}

	assert.True(t, got[2].Date.IsZero(), "empty date stays zero")
	assert.Nil(t, got[2].Involved, "empty involved means everyone")
}

func TestMarshalExpense(t *testing.T) {
	row := MarshalExpense(model.Expense{
		ID:       "e1",
		Date:     date(2025, 2, 28),
		Title:    "Taxi",
		Amount:   dec("18.5"),
		Currency: "USD",
		Payer:    "alice",
		Involved: []string{"alice", "bob", "charlie"},
	})
	assert.Equal(t, []string{"e1", "2025-02-28", "Taxi", "18.5", "USD", "alice", "alice;bob;charlie", ""}, row)
}

func TestAppendExpenses_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AppendExpenses(&buf, []model.Expense{{ID: "e1", Amount: dec("1"), Payer: "a"}}))
	assert.True(t, strings.HasPrefix(buf.String(), "e1,"))
}

func TestReadExpenses_Empty(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalExpense_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"field count", []string{"e1"}, "expected 8 fields"},
		{"bad date", []string{"e1", "03/01/2025", "", "1", "", "a", "", ""}, "parsing date"},
		{"bad amount", []string{"e1", "", "", "ten", "", "a", "", ""}, "parsing amount"},
		{"bad flag", []string{"e1", "", "", "1", "", "a", "", "maybe"}, "parsing reimbursement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalExpense(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadExpenses_ReportsRow(t *testing.T) {
	data := Header + "\ne1,,x,1,EUR,a,,\ne2,,y,oops,EUR,a,,\n"
	_, err := ReadExpenses(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}
