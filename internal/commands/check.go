package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/expenses"
)

func newCheckCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the expense ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}
			all, err := g.expenses.All()
			if err != nil {
				return err
			}

			problems := expenses.ValidateExpenses(all, g.roster)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "  %s\n", p.Error())
			}
			target := g.target("")
			warned := make(map[string]bool)
			for _, x := range all {
				code := x.EffectiveCurrency()
				if code == target || warned[code] || (g.rates.Has(code) && g.rates.Has(target)) {
					continue
				}
				warned[code] = true
				fmt.Fprintf(out, "  warning: no exchange rate between %s and %s, amounts count unconverted\n", code, target)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problems in %d expenses", len(problems), len(all))
			}

			fmt.Fprintf(out, "%d expenses OK\n", len(all))
			return nil
		},
	}
}
