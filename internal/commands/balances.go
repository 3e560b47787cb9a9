package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/settlement"
)

func newBalancesCommand(e *env) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show what each participant paid, owes and is owed",
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

			code := g.target(target)
			locale := g.locale(e)
			calc := settlement.NewCalculator(currency.NewNormalizer(e.logger))
			summaries := calc.Summarize(all, g.roster.All(), code, g.rates)

			out := cmd.OutOrStdout()
			heading(out, fmt.Sprintf("%s: balances in %s", g.cfg.Group.Name, code))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "PARTICIPANT\tPAID\tSHARE\tBALANCE\t")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
					g.roster.Name(s.ParticipantID),
					currency.FormatAmount(s.Paid, code, locale),
					currency.FormatAmount(s.Share, code, locale),
					currency.FormatAmount(s.Balance.Round(2), code, locale))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&target, "currency", "", "report currency (default: group currency)")
	return cmd
}
