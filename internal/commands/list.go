package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/id"
)

func newListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded expenses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}
			all, err := g.expenses.All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, "No expenses recorded.")
				return nil
			}

			locale := g.locale(e)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTITLE\tAMOUNT\tPAYER\tINVOLVED")
			for _, x := range all {
				date := ""
				if !x.Date.IsZero() {
					date = x.Date.Format(dateLayout)
				}
				involved := "everyone"
				if len(x.Involved) > 0 {
					involved = strings.Join(x.Involved, ",")
				}
				title := x.Title
				if x.IsReimbursement {
					title += " (reimbursement)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					id.Short(x.ID), date, title,
					currency.FormatAmount(x.Amount, x.EffectiveCurrency(), locale),
					x.Payer, involved)
			}
			return tw.Flush()
		},
	}
}
