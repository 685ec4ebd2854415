// Package snapshot decodes ledger snapshot documents for the engine.
//
// A snapshot is the wholesale input contract of the engine: the full
// participant registry plus the ordered transaction history, as one JSON
// document. Decoding is strict about document shape (that is a caller bug)
// but lenient about field values: a malformed timestamp becomes the zero
// instant so the integrity checker can report it, instead of the decoder
// rejecting the whole ledger over one bad row.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tallyhq/tally/internal/models"
)

// Snapshot is one decoded ledger document.
type Snapshot struct {
	Participants []models.Participant `json:"participants"`
	Transactions []models.Transaction `json:"transactions"`
}

// Registry builds the participant registry from the snapshot.
func (s *Snapshot) Registry() (models.Registry, error) {
	return models.NewRegistry(s.Participants)
}

// Load decodes a snapshot document from r.
func Load(r io.Reader) (*Snapshot, error) {
	var doc struct {
		Participants []models.Participant `json:"participants"`
		Transactions []wireTransaction    `json:"transactions"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	snap := &Snapshot{Participants: doc.Participants}
	snap.Transactions = make([]models.Transaction, len(doc.Transactions))
	for i, w := range doc.Transactions {
		t := w.Transaction
		t.Timestamp = time.Time(w.Timestamp)
		snap.Transactions[i] = t
	}
	return snap, nil
}

// LoadFile decodes a snapshot document from the file at path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// wireTransaction shadows the timestamp field with the lenient decoder.
type wireTransaction struct {
	models.Transaction
	Timestamp flexTime `json:"timestamp"`
}

// flexTime accepts an RFC 3339 string or a unix-seconds number. Anything
// else decodes to the zero instant; the checker flags it as an invalid
// timestamp.
type flexTime time.Time

func (ft *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			*ft = flexTime(time.Time{})
			return nil
		}
		*ft = flexTime(parsed)
		return nil
	}

	var secs int64
	if err := json.Unmarshal(data, &secs); err == nil {
		*ft = flexTime(time.Unix(secs, 0).UTC())
		return nil
	}

	*ft = flexTime(time.Time{})
	return nil
}
