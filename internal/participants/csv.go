package participants

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/splitledger/splitledger/internal/model"
)

const (
	numFields = 2
	colID     = 0
	colName   = 1
)

// ReadParticipants reads participants.csv.
func ReadParticipants(r io.Reader) ([]model.Participant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading participants CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var ps []model.Participant
	for i, rec := range records[1:] {
		p, err := UnmarshalParticipant(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// WriteParticipants writes participants.csv.
func WriteParticipants(w io.Writer, ps []model.Participant) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"participant_id", "name"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range ps {
		if err := cw.Write(MarshalParticipant(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalParticipant converts a Participant to a CSV row.
func MarshalParticipant(p model.Participant) []string {
	row := make([]string, numFields)
	row[colID] = p.ID
	row[colName] = p.Name
	return row
}

// UnmarshalParticipant converts a CSV row to a Participant.
func UnmarshalParticipant(record []string) (model.Participant, error) {
	if len(record) != numFields {
		return model.Participant{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Participant{}, fmt.Errorf("empty participant_id")
	}
	return model.Participant{ID: record[colID], Name: record[colName]}, nil
}
