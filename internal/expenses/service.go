package expenses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/id"
	"github.com/splitledger/splitledger/internal/model"
)

// FileName is the expense ledger inside a group directory.
const FileName = "expenses.csv"

// Service reads and appends a group's expenses.
type Service struct {
	groupDir     string
	participants ParticipantChecker
}

// NewService creates an expenses Service.
func NewService(groupDir string, participants ParticipantChecker) *Service {
	return &Service{groupDir: groupDir, participants: participants}
}

// AddParams holds parameters for recording an expense.
type AddParams struct {
	Date            time.Time
	Title           string
	Amount          decimal.Decimal
	Currency        string
	Payer           string
	Involved        []string
	IsReimbursement bool
}

// Add records a new expense and returns its ID.
func (s *Service) Add(params AddParams) (string, error) {
	e := model.Expense{
		ID:              id.New(),
		Date:            params.Date,
		Title:           params.Title,
		Amount:          params.Amount,
		Currency:        strings.ToUpper(strings.TrimSpace(params.Currency)),
		Payer:           params.Payer,
		Involved:        params.Involved,
		IsReimbursement: params.IsReimbursement,
	}
	if err := s.Append([]model.Expense{e}); err != nil {
		return "", err
	}
	return e.ID, nil
}

// Append validates new expenses together with the existing ledger and
// appends them to expenses.csv.
func (s *Service) Append(newExpenses []model.Expense) error {
	if len(newExpenses) == 0 {
		return nil
	}

	existing, err := s.All()
	if err != nil {
		return err
	}

	all := append(existing, newExpenses...)
	if verrs := ValidateExpenses(all, s.participants); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating group dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening expenses: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendExpenses(f, newExpenses); err != nil {
		return fmt.Errorf("appending expenses: %w", err)
	}
	return nil
}

// All reads every expense in the group. A missing ledger is empty.
func (s *Service) All() ([]model.Expense, error) {
	path := s.path()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening expenses %s: %w", path, err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expenses %s: %w", path, err)
	}
	return expenses, nil
}

// Contains reports whether an expense ID is already recorded.
func (s *Service) Contains(expenseID string) (bool, error) {
	all, err := s.All()
	if err != nil {
		return false, err
	}
	for _, e := range all {
		if e.ID == expenseID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) path() string {
	return filepath.Join(s.groupDir, FileName)
}
