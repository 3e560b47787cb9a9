package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "expense_id,date,title,amount,currency,payer,involved,reimbursement"

const (
	numFields    = 8
	dateFormat   = "2006-01-02"
	involvedSep  = ";"
	colID        = 0
	colDate      = 1
	colTitle     = 2
	colAmount    = 3
	colCurrency  = 4
	colPayer     = 5
	colInvolved  = 6
	colReimburse = 7
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses to an expenses.csv writer (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendExpenses appends expenses to an existing expenses.csv writer (no header).
func AppendExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	if !e.Date.IsZero() {
		row[colDate] = e.Date.Format(dateFormat)
	}
	row[colTitle] = e.Title
	row[colAmount] = e.Amount.String()
	row[colCurrency] = e.Currency
	row[colPayer] = e.Payer
	row[colInvolved] = strings.Join(e.Involved, involvedSep)
	if e.IsReimbursement {
		row[colReimburse] = "true"
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var date time.Time
	if record[colDate] != "" {
		var err error
		date, err = time.Parse(dateFormat, record[colDate])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var involved []string
	for _, p := range strings.Split(record[colInvolved], involvedSep) {
		if p = strings.TrimSpace(p); p != "" {
			involved = append(involved, p)
		}
	}

	var reimbursement bool
	if record[colReimburse] != "" {
		reimbursement, err = strconv.ParseBool(record[colReimburse])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing reimbursement %q: %w", record[colReimburse], err)
		}
	}

	return model.Expense{
		ID:              record[colID],
		Date:            date,
		Title:           record[colTitle],
		Amount:          amount,
		Currency:        record[colCurrency],
		Payer:           record[colPayer],
		Involved:        involved,
		IsReimbursement: reimbursement,
	}, nil
}
