package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/currency"
)

func newConvertCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <amount> <from> <to>",
		Short:   "Convert an amount using the group's exchange rates",
		Example: "  splitledger convert 100 USD EUR",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])

			n := currency.NewNormalizer(e.logger)
			converted, ok := n.ConvertChecked(amount, from, to, g.rates)

			out := cmd.OutOrStdout()
			locale := g.locale(e)
			if !ok {
				fmt.Fprintf(out, "%s (no rate for %s/%s, left unconverted)\n",
					currency.FormatAmount(amount, from, locale), from, to)
				return nil
			}
			fmt.Fprintf(out, "%s = %s\n",
				currency.FormatAmount(amount, from, locale),
				currency.FormatAmount(converted, to, locale))
			return nil
		},
	}
}
