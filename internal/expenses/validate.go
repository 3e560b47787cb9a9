package expenses

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/model"
)

// Rules checked by ValidateExpenses.
const (
	RuleAmount    = "amount"
	RuleCurrency  = "currency"
	RulePayer     = "payer"
	RuleInvolved  = "involved"
	RuleUniqueID  = "unique-id"
	RulePrecision = "precision"
)

var currencyCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ValidationError describes a single problem with an expense.
type ValidationError struct {
	Rule        string
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.ExpenseID, e.Description)
}

// ParticipantChecker tests whether a participant exists and proposes
// corrections for unknown IDs.
type ParticipantChecker interface {
	Exists(id string) bool
	Suggest(id string) (string, bool)
}

// ValidateExpenses checks expenses before they are written. Settlement
// itself tolerates every problem reported here.
func ValidateExpenses(expenses []model.Expense, participants ParticipantChecker) []ValidationError {
	var errs []ValidationError
	hundred := decimal.NewFromInt(100)
	seen := make(map[string]bool, len(expenses))

	for _, e := range expenses {
		if seen[e.ID] {
			errs = append(errs, ValidationError{
				Rule:        RuleUniqueID,
				ExpenseID:   e.ID,
				Description: "duplicate expense id",
			})
		}
		seen[e.ID] = true

		if !e.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Rule:        RuleAmount,
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("amount %s must be positive", e.Amount),
			})
		}

		// Exact decimals: no more than 2 decimal places.
		if !e.Amount.Mul(hundred).Equal(e.Amount.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Rule:        RulePrecision,
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", e.Amount),
			})
		}

		if e.Currency != "" && !currencyCode.MatchString(e.Currency) {
			errs = append(errs, ValidationError{
				Rule:        RuleCurrency,
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("currency %q is not a 3-letter code", e.Currency),
			})
		}

		if !participants.Exists(e.Payer) {
			errs = append(errs, ValidationError{
				Rule:        RulePayer,
				ExpenseID:   e.ID,
				Description: unknownParticipant(participants, e.Payer),
			})
		}

		for _, p := range e.Involved {
			if !participants.Exists(p) {
				errs = append(errs, ValidationError{
					Rule:        RuleInvolved,
					ExpenseID:   e.ID,
					Description: unknownParticipant(participants, p),
				})
			}
		}
	}

	return errs
}

func unknownParticipant(participants ParticipantChecker, id string) string {
	if s, ok := participants.Suggest(id); ok {
		return fmt.Sprintf("unknown participant %q (did you mean %q?)", id, s)
	}
	return fmt.Sprintf("unknown participant %q", id)
}
