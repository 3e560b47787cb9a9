package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/expenses"
	"github.com/splitledger/splitledger/internal/settlement"
)

func newSettleCommand(e *env) *cobra.Command {
	var target string
	var record bool

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute the payments that settle the group",
		Long: `Compute a short list of payments that brings every participant's balance
to zero. With --record the payments are added to the ledger as
reimbursements, so the group reads as settled afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}
			all, err := g.expenses.All()
			if err != nil {
				return err
			}

			code := g.target(target)
			locale := g.locale(e)
			calc := settlement.NewCalculator(currency.NewNormalizer(e.logger))
			txs := calc.CalculateDebts(all, g.roster.All(), code, g.rates)

			out := cmd.OutOrStdout()
			heading(out, fmt.Sprintf("%s: settle up in %s", g.cfg.Group.Name, code))
			if len(txs) == 0 {
				fmt.Fprintln(out, "All settled up.")
				return nil
			}
			for _, tx := range txs {
				fmt.Fprintf(out, "%s pays %s %s\n",
					g.roster.Name(tx.From), g.roster.Name(tx.To),
					currency.FormatAmount(tx.Amount, tx.Currency, locale))
			}

			if !record {
				return nil
			}

			now := e.now()
			day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			reimbursements := expenses.Reimbursements(txs, day)
			if err := g.expenses.Append(reimbursements); err != nil {
				return fmt.Errorf("recording reimbursements: %w", err)
			}

			entries := make([]activity.Entry, len(reimbursements))
			for i, r := range reimbursements {
				entries[i] = activity.Entry{
					Action:    activity.ActionSettle,
					Details:   fmt.Sprintf("%s pays %s %s %s", r.Payer, r.Involved[0], r.Amount.StringFixed(2), r.Currency),
					ExpenseID: r.ID,
				}
			}
			if _, err := g.record(e, fmt.Sprintf("settle: %d payments in %s", len(txs), code), entries...); err != nil {
				return err
			}

			fmt.Fprintf(out, "Recorded %d reimbursements.\n", len(reimbursements))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "currency", "", "settlement currency (default: group currency)")
	cmd.Flags().BoolVar(&record, "record", false, "record the payments as reimbursements")
	return cmd
}
