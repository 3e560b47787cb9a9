package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/expenses"
	"github.com/splitledger/splitledger/internal/gitops"
	"github.com/splitledger/splitledger/internal/participants"
)

// ErrNotInitialized is returned when the group directory has no group.yaml.
var ErrNotInitialized = errors.New("not a splitledger group (run 'splitledger init')")

// group is an opened group directory.
type group struct {
	dir      string
	cfg      *config.Config
	roster   *participants.Service
	expenses *expenses.Service
	rates    currency.Rates
}

func openGroup(e *env) (*group, error) {
	dir, err := filepath.Abs(e.settings.Group)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotInitialized)
	}
	if err != nil {
		return nil, err
	}

	roster, err := participants.Load(dir)
	if err != nil {
		return nil, err
	}

	g := &group{
		dir:      dir,
		cfg:      cfg,
		roster:   roster,
		expenses: expenses.NewService(dir, roster),
	}
	if err := g.loadRates(e); err != nil {
		return nil, err
	}
	return g, nil
}

// loadRates reads the configured snapshot. A missing file leaves only
// same-currency conversions available; a stale one is used with a warning.
func (g *group) loadRates(e *env) error {
	if g.cfg.Currency.RatesFile == "" {
		return nil
	}
	path := g.cfg.Currency.RatesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.dir, path)
	}

	snap, err := currency.LoadSnapshot(path)
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Info("no exchange rate snapshot", zap.String("path", path))
		return nil
	}
	if err != nil {
		return err
	}

	ttl, err := g.cfg.Currency.TTL()
	if err != nil {
		return err
	}
	if snap.Stale(e.now(), ttl) {
		e.logger.Warn("exchange rates are stale",
			zap.Time("fetched_at", snap.FetchedAt),
			zap.Duration("ttl", ttl),
		)
	}
	g.rates = snap.Rates
	return nil
}

func (g *group) target(override string) string {
	if override != "" {
		return strings.ToUpper(override)
	}
	if g.cfg.Currency.Default != "" {
		return strings.ToUpper(g.cfg.Currency.Default)
	}
	return "EUR"
}

func (g *group) locale(e *env) string {
	if e.settings.Locale != "" {
		return e.settings.Locale
	}
	return g.cfg.Display.Locale
}

// record commits pending changes (when enabled) and appends activity
// entries stamped with the resulting commit hash.
func (g *group) record(e *env, message string, entries ...activity.Entry) (string, error) {
	hash := ""
	if g.cfg.Git.AutoCommit && gitops.IsRepo(g.dir) {
		var err error
		hash, err = gitops.CommitAll(g.dir, message, g.cfg.Git.Author())
		if err != nil {
			return "", err
		}
	}

	actor := os.Getenv("USER")
	for i := range entries {
		entries[i].Timestamp = e.now()
		entries[i].CommitHash = hash
		if entries[i].Actor == "" {
			entries[i].Actor = actor
		}
	}
	if err := activity.Append(g.dir, entries); err != nil {
		e.logger.Warn("writing activity log failed", zap.Error(err))
	}
	return hash, nil
}
