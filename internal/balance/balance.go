// Package balance derives per-participant net positions against the ledger
// owner from the full transaction history.
//
// The derivation runs from scratch on every call. There is no cached or
// incremental balance state to drift out of sync with the ledger; the cost
// is one pass over the snapshot, which is the trade this engine wants.
package balance

import (
	"sort"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/money"
)

// Kind tags how one transaction touched a relationship with the owner.
type Kind string

const (
	// KindCredit: the owner fronted a shared cost; the participant owes
	// their share.
	KindCredit Kind = "credit"
	// KindDebt: the participant fronted a shared cost that includes the
	// owner's share.
	KindDebt Kind = "debt"
	// KindSettlementIn: the participant paid the owner back.
	KindSettlementIn Kind = "settlement-in"
	// KindSettlementOut: the owner paid the participant back.
	KindSettlementOut Kind = "settlement-out"
)

// Entry is one transaction's contribution to a relationship, in the order
// the transactions were supplied.
type Entry struct {
	TransactionID string       `json:"transactionId"`
	Kind          Kind         `json:"kind"`
	Amount        money.Amount `json:"amount"`
}

// Position is the running net position between the owner and one
// participant.
type Position struct {
	// OwedToMe is what the participant owes the owner, in minor units.
	OwedToMe money.Amount `json:"owedToMe"`

	// IOwe is what the owner owes the participant, in minor units.
	IOwe money.Amount `json:"iOwe"`

	// Entries is the participant-filtered transaction feed backing the
	// two sums.
	Entries []Entry `json:"relatedTxns"`
}

// Net returns OwedToMe - IOwe: positive means the participant owes the
// owner, negative means the owner owes them, zero means settled.
func (p *Position) Net() money.Amount { return p.OwedToMe - p.IOwe }

// Summarize folds the transaction history into one Position per participant
// who has any transactional relationship with the owner.
//
// The sums are order-independent; supply order only shapes each Entries
// feed. Transactions involving neither side of the owner are not tracked.
func Summarize(txns []models.Transaction) map[string]*Position {
	positions := make(map[string]*Position)

	at := func(id string) *Position {
		p, ok := positions[id]
		if !ok {
			p = &Position{}
			positions[id] = p
		}
		return p
	}

	for i := range txns {
		t := &txns[i]

		if t.IsSettlement() {
			recipient, ok := t.Recipient()
			if !ok || recipient == t.Payer {
				continue
			}
			paid := t.Amount.Abs()
			switch {
			case t.Payer == models.Owner && recipient != models.Owner:
				// I paid them back: my debt shrinks.
				p := at(recipient)
				p.IOwe -= paid
				p.Entries = append(p.Entries, Entry{TransactionID: t.ID, Kind: KindSettlementOut, Amount: paid})
			case t.Payer != models.Owner && recipient == models.Owner:
				// They paid me back: their debt shrinks.
				p := at(t.Payer)
				p.OwedToMe -= paid
				p.Entries = append(p.Entries, Entry{TransactionID: t.ID, Kind: KindSettlementIn, Amount: paid})
			}
			// Settlements between two other people are not this ledger's
			// business.
			continue
		}

		if !t.IsSharedExpense() {
			continue
		}

		myShare := t.Splits[models.Owner]
		if t.Payer == models.Owner {
			for _, id := range participantKeys(t.Splits) {
				share := t.Splits[id]
				p := at(id)
				p.OwedToMe += share
				p.Entries = append(p.Entries, Entry{TransactionID: t.ID, Kind: KindCredit, Amount: share})
			}
		} else if myShare > 0 {
			p := at(t.Payer)
			p.IOwe += myShare
			p.Entries = append(p.Entries, Entry{TransactionID: t.ID, Kind: KindDebt, Amount: myShare})
		}
		// Someone else covered a cost that never touched the owner:
		// nothing to track.
	}

	return positions
}

// participantKeys returns the split keys other than the owner, sorted so
// one transaction's feed entries come out in a stable order.
func participantKeys(splits map[string]money.Amount) []string {
	keys := make([]string, 0, len(splits))
	for id := range splits {
		if id != models.Owner {
			keys = append(keys, id)
		}
	}
	sort.Strings(keys)
	return keys
}
