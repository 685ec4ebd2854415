package models

import "fmt"

// Owner is the reserved identifier for the ledger owner. The owner is never
// listed in the registry but is always a valid participant id.
const Owner = "me"

// Participant represents one person sharing the ledger.
type Participant struct {
	// ID is the unique identifier for the participant.
	ID string `json:"uniqueId"`

	// Name is the display name of the participant.
	Name string `json:"name"`
}

// Registry is the fixed set of registered participants, indexed by id.
// Build one with NewRegistry; a zero Registry contains only the owner.
type Registry map[string]Participant

// NewRegistry builds a Registry from a participant list.
//
// Duplicate ids, including an explicit entry for the reserved owner id, are a
// caller bug and return an error rather than a finding: the registry is the
// trust anchor every referential check leans on, so it must be well formed
// before any check runs.
func NewRegistry(participants []Participant) (Registry, error) {
	reg := make(Registry, len(participants))
	for _, p := range participants {
		if p.ID == Owner {
			return nil, fmt.Errorf("participant id %q is reserved for the ledger owner", Owner)
		}
		if _, dup := reg[p.ID]; dup {
			return nil, fmt.Errorf("duplicate participant id %q", p.ID)
		}
		reg[p.ID] = p
	}
	return reg, nil
}

// Contains reports whether id is a valid participant identifier: either the
// reserved owner id or a registered participant.
func (r Registry) Contains(id string) bool {
	if id == Owner {
		return true
	}
	_, ok := r[id]
	return ok
}

// Name returns the display name for id, falling back to the id itself for
// the owner and for unknown participants.
func (r Registry) Name(id string) string {
	if p, ok := r[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}
