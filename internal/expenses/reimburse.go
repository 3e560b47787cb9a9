package expenses

import (
	"time"

	"github.com/splitledger/splitledger/internal/id"
	"github.com/splitledger/splitledger/internal/model"
)

// ReimbursementTitle is the title given to materialized settlements.
const ReimbursementTitle = "Reimbursement"

// Reimbursement turns a settlement transaction into an expense paid by the
// debtor on behalf of the creditor. Recording it nets both balances out.
func Reimbursement(tx model.Transaction, date time.Time) model.Expense {
	return model.Expense{
		ID:              id.New(),
		Date:            date,
		Title:           ReimbursementTitle,
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		Payer:           tx.From,
		Involved:        []string{tx.To},
		IsReimbursement: true,
	}
}

// Reimbursements materializes every transaction in order.
func Reimbursements(txs []model.Transaction, date time.Time) []model.Expense {
	out := make([]model.Expense, len(txs))
	for i, tx := range txs {
		out[i] = Reimbursement(tx, date)
	}
	return out
}
