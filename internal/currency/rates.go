package currency

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTTL is how long a rate snapshot is considered fresh.
const DefaultTTL = 24 * time.Hour

// Snapshot is a set of exchange rates fetched at one point in time.
type Snapshot struct {
	Base      string    `yaml:"base"`
	FetchedAt time.Time `yaml:"fetched_at"`
	Rates     Rates     `yaml:"rates"`
}

// Stale reports whether the snapshot is older than ttl at now.
// A snapshot with no fetch time is always stale.
func (s *Snapshot) Stale(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(s.FetchedAt) > ttl
}

// LoadSnapshot reads a rates.yaml file from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing rates: %w", err)
	}
	s.Rates = s.Rates.Normalize()
	return &s, nil
}

// SaveSnapshot writes a Snapshot to a YAML file.
func SaveSnapshot(path string, s *Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling rates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rates: %w", err)
	}
	return nil
}

// DefaultSnapshot returns a snapshot holding only the base currency.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Base:  "eur",
		Rates: Rates{"eur": 1.0},
	}
}
