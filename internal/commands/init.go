package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/gitops"
	"github.com/splitledger/splitledger/internal/model"
	"github.com/splitledger/splitledger/internal/participants"
)

func newInitCommand(e *env) *cobra.Command {
	var name string
	var defaultCurrency string
	var members []string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := e.settings.Group
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, e, absDir, name, defaultCurrency, members, !noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&defaultCurrency, "currency", model.DefaultCurrency, "currency balances are reported in")
	cmd.Flags().StringSliceVar(&members, "participants", nil, "initial participant ids, comma separated")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, e *env, dir, name, defaultCurrency string, members []string, useGit bool) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains a group", dir)
	}

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, strings.ToUpper(defaultCurrency))
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	roster := participants.NewService(nil)
	for _, m := range members {
		if err := roster.Add(model.Participant{ID: m}); err != nil {
			return err
		}
	}
	if err := roster.Save(dir); err != nil {
		return fmt.Errorf("writing participants: %w", err)
	}

	snap := currency.DefaultSnapshot()
	snap.FetchedAt = e.now().UTC()
	if err := currency.SaveSnapshot(filepath.Join(dir, cfg.Currency.RatesFile), snap); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("logs/\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if useGit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}

	g := &group{dir: dir, cfg: cfg, roster: roster}
	hash, err := g.record(e, "init: "+name, activity.Entry{
		Action:  activity.ActionInit,
		Details: fmt.Sprintf("created group %q with %d participants", name, len(members)),
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	out := cmd.OutOrStdout()
	if hash != "" {
		fmt.Fprintf(out, "Initialized group %q at %s (%s)\n", name, dir, hash)
	} else {
		fmt.Fprintf(out, "Initialized group %q at %s\n", name, dir)
	}
	return nil
}
