package participants

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/splitledger/splitledger/internal/model"
)

// FileName is the roster file inside a group directory.
const FileName = "participants.csv"

// ErrDuplicate is returned when adding a participant ID that already exists.
var ErrDuplicate = errors.New("participant already exists")

// Service provides in-memory lookup over a group's participants.
type Service struct {
	participants []model.Participant
	byID         map[string]model.Participant
}

// NewService creates a Service from a slice of participants. Later
// duplicates of an ID are dropped.
func NewService(participants []model.Participant) *Service {
	s := &Service{byID: make(map[string]model.Participant, len(participants))}
	for _, p := range participants {
		if _, ok := s.byID[p.ID]; ok {
			continue
		}
		s.participants = append(s.participants, p)
		s.byID[p.ID] = p
	}
	return s
}

// Load reads participants.csv from a group directory.
func Load(groupDir string) (*Service, error) {
	path := filepath.Join(groupDir, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening participants: %w", err)
	}
	defer f.Close()

	ps, err := ReadParticipants(f)
	if err != nil {
		return nil, fmt.Errorf("reading participants: %w", err)
	}
	return NewService(ps), nil
}

// All returns all participants in roster order.
func (s *Service) All() []model.Participant {
	return s.participants
}

// IDs returns all participant IDs in roster order.
func (s *Service) IDs() []string {
	return model.ParticipantIDs(s.participants)
}

// Get returns a participant by ID.
func (s *Service) Get(id string) (model.Participant, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Exists reports whether a participant ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Name returns the display name for id, or id itself if unknown.
func (s *Service) Name(id string) string {
	if p, ok := s.byID[id]; ok {
		return p.DisplayName()
	}
	return id
}

// Add appends a participant to the roster.
func (s *Service) Add(p model.Participant) error {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return errors.New("participant id is required")
	}
	if strings.ContainsAny(p.ID, ";,") {
		return fmt.Errorf("participant id %q must not contain ';' or ','", p.ID)
	}
	if s.Exists(p.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicate, p.ID)
	}
	s.participants = append(s.participants, p)
	s.byID[p.ID] = p
	return nil
}

// Suggest returns the known ID closest to id by edit distance, if one is
// close enough to be a plausible typo.
func (s *Service) Suggest(id string) (string, bool) {
	best := ""
	bestDist := -1
	for _, p := range s.participants {
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(p.ID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.ID, d
		}
	}
	if bestDist < 0 {
		return "", false
	}
	limit := len(id) / 3
	if limit < 1 {
		limit = 1
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}

// Save writes the roster to participants.csv in a group directory.
func (s *Service) Save(groupDir string) error {
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		return fmt.Errorf("creating group dir: %w", err)
	}

	path := filepath.Join(groupDir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating participants file: %w", err)
	}
	defer f.Close()

	if err := WriteParticipants(f, s.participants); err != nil {
		return fmt.Errorf("writing participants: %w", err)
	}
	return nil
}
