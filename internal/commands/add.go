package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/expenses"
	"github.com/splitledger/splitledger/internal/id"
)

const dateLayout = "2006-01-02"

func newAddCommand(e *env) *cobra.Command {
	var (
		title         string
		amount        string
		code          string
		payer         string
		involved      []string
		date          string
		reimbursement bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  splitledger add --title Dinner --amount 90 --payer alice
  splitledger add --title Taxi --amount 24.50 --currency USD --payer bob --involved bob,carol`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			when := e.now()
			if date != "" {
				when, err = time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
				}
			}
			when = time.Date(when.Year(), when.Month(), when.Day(), 0, 0, 0, 0, time.UTC)

			if code == "" {
				code = g.target("")
			}

			expenseID, err := g.expenses.Add(expenses.AddParams{
				Date:            when,
				Title:           title,
				Amount:          value,
				Currency:        code,
				Payer:           payer,
				Involved:        involved,
				IsReimbursement: reimbursement,
			})
			if err != nil {
				return err
			}

			split := "everyone"
			if len(involved) > 0 {
				split = strings.Join(involved, ", ")
			}
			if _, err := g.record(e, "expense: "+title, activity.Entry{
				Action:    activity.ActionAddExpense,
				Details:   fmt.Sprintf("%s %s %s paid by %s", title, value.StringFixed(2), strings.ToUpper(code), payer),
				ExpenseID: expenseID,
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s paid by %s, split among %s (%s)\n",
				title, currency.FormatAmount(value, code, g.locale(e)), payer, split, id.Short(expenseID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "what the money was spent on (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (required)")
	cmd.Flags().StringVar(&code, "currency", "", "currency code (default: group currency)")
	cmd.Flags().StringVar(&payer, "payer", "", "participant who paid (required)")
	cmd.Flags().StringSliceVar(&involved, "involved", nil, "participants sharing the cost (default: everyone)")
	cmd.Flags().StringVar(&date, "date", "", "expense date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&reimbursement, "reimbursement", false, "mark as a repayment between participants")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("payer")

	return cmd
}
