package model

import "github.com/shopspring/decimal"

// Transaction is a settlement instruction: From pays To the given amount.
type Transaction struct {
	From     string
	To       string
	Amount   decimal.Decimal
	Currency string
}

// Balance is a participant's net position in the target currency.
// Positive = owed money, negative = owes money.
type Balance struct {
	ParticipantID string
	Amount        decimal.Decimal
}
