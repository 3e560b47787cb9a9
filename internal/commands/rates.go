package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/currency"
)

func newRatesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the group's exchange rate snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			codes := make([]string, 0, len(g.rates))
			for c := range g.rates {
				codes = append(codes, c)
			}
			sort.Strings(codes)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CURRENCY\tRATE")
			for _, c := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(c), strconv.FormatFloat(g.rates[c], 'f', -1, 64))
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(newRatesSetCommand(e))
	return cmd
}

func newRatesSetCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "set <currency> <rate>",
		Short:   "Set a rate relative to the snapshot base and refresh its timestamp",
		Example: "  splitledger rates set usd 1.08",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil || rate <= 0 {
				return fmt.Errorf("invalid rate %q: must be a positive number", args[1])
			}
			code := strings.ToLower(strings.TrimSpace(args[0]))
			if len(code) != 3 {
				return fmt.Errorf("invalid currency code %q", args[0])
			}

			path := g.cfg.Currency.RatesFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(g.dir, path)
			}
			snap, err := currency.LoadSnapshot(path)
			if errors.Is(err, fs.ErrNotExist) {
				snap, err = currency.DefaultSnapshot(), nil
			}
			if err != nil {
				return err
			}
			if snap.Rates == nil {
				snap.Rates = currency.Rates{}
			}
			snap.Rates[code] = rate
			snap.FetchedAt = e.now().UTC()
			if err := currency.SaveSnapshot(path, snap); err != nil {
				return err
			}

			if _, err := g.record(e, fmt.Sprintf("rates: %s = %s", strings.ToUpper(code), args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", strings.ToUpper(snap.Base), args[1], strings.ToUpper(code))
			return nil
		},
	}
}
