package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/importer"
	"github.com/splitledger/splitledger/internal/model"
)

func newImportCommand(e *env) *cobra.Command {
	var (
		format   string
		payer    string
		involved []string
		code     string
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import card or bank statement CSVs as expenses",
		Long: `Import statement CSVs as expenses paid by --payer. Without file
arguments every CSV in the group's import/ directory is imported and then
moved to import/processed/. Lines already in the ledger are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}
			if !g.roster.Exists(payer) {
				return fmt.Errorf("unknown payer %q", payer)
			}

			parser, err := importer.DefaultRegistry().Lookup(format)
			if err != nil {
				return err
			}

			paths := args
			scanned := len(args) == 0
			if scanned {
				files, err := importer.Scan(g.dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
				}
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			existing, err := g.expenses.All()
			if err != nil {
				return err
			}
			seen := make(map[string]bool, len(existing))
			for _, x := range existing {
				seen[x.ID] = true
			}

			opts := importer.Options{Payer: payer, Involved: involved, Currency: g.target(code)}
			var added []model.Expense
			skipped := 0
			for _, path := range paths {
				lines, err := parseStatement(parser, path)
				if err != nil {
					return err
				}
				for _, x := range importer.ToExpenses(lines, opts) {
					if seen[x.ID] {
						skipped++
						continue
					}
					seen[x.ID] = true
					added = append(added, x)
				}
				e.logger.Debug("parsed statement", zap.String("path", path), zap.Int("lines", len(lines)))
			}

			if err := g.expenses.Append(added); err != nil {
				return err
			}

			if scanned {
				for _, path := range paths {
					if err := importer.MarkProcessed(g.dir, filepath.Base(path)); err != nil {
						return err
					}
				}
			}

			entries := make([]activity.Entry, 0, len(added))
			for _, x := range added {
				entries = append(entries, activity.Entry{
					Action:    activity.ActionImport,
					Details:   fmt.Sprintf("%s %s %s", x.Title, x.Amount.StringFixed(2), x.Currency),
					ExpenseID: x.ID,
				})
			}
			if _, err := g.record(e, fmt.Sprintf("import: %d expenses from %d files", len(added), len(paths)), entries...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses (%d already recorded) from %d files\n",
				len(added), skipped, len(paths))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	cmd.Flags().StringVar(&payer, "payer", "", "participant who owns the statement (required)")
	cmd.Flags().StringSliceVar(&involved, "involved", nil, "participants sharing the imported costs (default: everyone)")
	cmd.Flags().StringVar(&code, "currency", "", "currency for lines without one (default: group currency)")
	_ = cmd.MarkFlagRequired("payer")

	return cmd
}

func parseStatement(p importer.Parser, path string) ([]importer.StatementLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lines, nil
}
