package expenses

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/id"
	"github.com/splitledger/splitledger/internal/model"
)

func TestAdd_NewLedger(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)

	expenseID, err := svc.Add(AddParams{
		Date:     date(2025, 1, 15),
		Title:    "Groceries",
		Amount:   dec("42.00"),
		Currency: "eur",
		Payer:    "alice",
		Involved: []string{"alice", "bob"},
	})
	require.NoError(t, err)
	assert.True(t, id.Valid(expenseID))

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	all, err := svc.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, expenseID, all[0].ID)
	assert.Equal(t, "EUR", all[0].Currency, "currency is upper-cased")
	assert.True(t, dec("42").Equal(all[0].Amount))
}

func TestAdd_ExistingLedger(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)

	_, err := svc.Add(AddParams{Title: "First", Amount: dec("10"), Payer: "alice"})
	require.NoError(t, err)
	second, err := svc.Add(AddParams{Title: "Second", Amount: dec("20"), Payer: "bob"})
	require.NoError(t, err)

	all, err := svc.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Title)
	assert.Equal(t, second, all[1].ID)
}

func TestAdd_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)

	_, err := svc.Add(AddParams{Title: "Bad", Amount: dec("10"), Payer: "mallory"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	all, err := svc.All()
	require.NoError(t, err)
	assert.Empty(t, all, "nothing written on failure")
}

func TestAppend_RejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)

	e := validExpense("fixed-id")
	require.NoError(t, svc.Append([]model.Expense{e}))

	err := svc.Append([]model.Expense{e})
	require.Error(t, err)
	assert.Contains(t, err.Error(), RuleUniqueID)
}

func TestAppend_Empty(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)
	require.NoError(t, svc.Append(nil))

	_, err := os.Stat(filepath.Join(dir, FileName))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestContains(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultParticipants)

	ok, err := svc.Contains("e1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Append([]model.Expense{validExpense("e1")}))
	ok, err = svc.Contains("e1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAll_NonExistent(t *testing.T) {
	svc := NewService(t.TempDir(), defaultParticipants)
	all, err := svc.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}
