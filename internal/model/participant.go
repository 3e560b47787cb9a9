package model

// Participant is one person in a group who can pay or be charged.
type Participant struct {
	ID   string
	Name string
}

// DisplayName returns the name, or the ID when no name is set.
func (p Participant) DisplayName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// ParticipantIDs returns the IDs of participants in order.
func ParticipantIDs(participants []Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}
