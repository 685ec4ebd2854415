package models

import (
	"time"

	"github.com/tallyhq/tally/internal/money"
)

// Type classifies a transaction.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
	TypeRefund  Type = "refund"
)

// Valid reports whether t is one of the enumerated transaction types.
func (t Type) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeRefund:
		return true
	}
	return false
}

// LinkedShare attributes part of a refund's amount to one parent expense.
type LinkedShare struct {
	ID     string       `json:"id"`
	Amount money.Amount `json:"amount"`
}

// Transaction represents one ledger event. Transactions are created outside
// the engine and supplied as an immutable snapshot; the engine only reads.
type Transaction struct {
	// ID is the opaque stable identifier, immutable once created.
	ID string `json:"id"`

	// Type is one of expense, income or refund.
	Type Type `json:"type"`

	// Name is the human-readable label, used in diagnostics. May be empty;
	// messages then fall back to the id.
	Name string `json:"expenseName,omitempty"`

	// Amount is the signed value in minor units. Positive for money spent or
	// received at face value; negative for refunds reducing a prior expense.
	Amount money.Amount `json:"amount"`

	// Payer is the participant who fronted the money. Owner is valid.
	Payer string `json:"payer"`

	// Participants names the involved participant ids, in order. Settlements
	// use it to name the counterparty.
	Participants []string `json:"participants,omitempty"`

	// Splits maps participant ids (including the owner) to minor-unit
	// shares. Nil for settlements and for transactions with no shared
	// allocation.
	Splits map[string]money.Amount `json:"splits,omitempty"`

	// IsReturn marks a settlement: a direct payer-to-recipient transfer
	// with no split semantics.
	IsReturn bool `json:"isReturn,omitempty"`

	// IsLinkedRefund marks a refund tied to one or more parent expenses.
	IsLinkedRefund bool `json:"isLinkedRefund,omitempty"`

	// ParentID references the single parent expense of a refund.
	ParentID string `json:"parentTransactionId,omitempty"`

	// ParentIDs references multiple parent expenses of a refund.
	ParentIDs []string `json:"parentTransactionIds,omitempty"`

	// LinkedShares allocates a refund's amount across multiple parents.
	// When absent, the refund's full amount is attributed to each parent it
	// references.
	LinkedShares []LinkedShare `json:"linkedTransactions,omitempty"`

	// NetAmount caches the expense's amount plus all refund allocations
	// attributed to it. Optional; must stay consistent with the live refund
	// graph (the integrity checker verifies, it never repairs).
	NetAmount *money.Amount `json:"netAmount,omitempty"`

	// Timestamp is the instant the transaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// IsSettlement reports whether the transaction is a direct repayment
// transfer rather than a shared cost.
func (t *Transaction) IsSettlement() bool { return t.IsReturn }

// IsSharedExpense reports whether the transaction carries a split map.
func (t *Transaction) IsSharedExpense() bool { return !t.IsReturn && len(t.Splits) > 0 }

// Recipient returns the settlement counterparty: the first entry of
// Participants. ok is false when no counterparty is named.
func (t *Transaction) Recipient() (string, bool) {
	if len(t.Participants) == 0 {
		return "", false
	}
	return t.Participants[0], true
}

// DisplayName returns the transaction's name, or its id when unnamed.
func (t *Transaction) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// LinkageKind discriminates the shapes a refund's parent reference can take.
type LinkageKind int

const (
	// LinkageNone: the transaction references no parent.
	LinkageNone LinkageKind = iota
	// LinkageSingle: one parent, full amount attributed to it.
	LinkageSingle
	// LinkageMulti: several parents, full amount attributed to each.
	LinkageMulti
	// LinkageAllocated: several parents with explicit per-parent shares.
	LinkageAllocated
)

// Linkage is a refund's parent reference(s), resolved into one canonical
// shape instead of the three overlapping optional fields it arrives as.
type Linkage struct {
	Kind      LinkageKind
	ParentIDs []string
	// Shares holds the per-parent allocation for LinkageAllocated.
	Shares map[string]money.Amount
}

// Linkage resolves the transaction's refund-parent fields into a tagged
// variant. ParentIDs wins over ParentID when both are present, matching the
// precedence the refund creator used.
func (t *Transaction) Linkage() Linkage {
	switch {
	case len(t.ParentIDs) > 0:
		if len(t.LinkedShares) > 0 {
			shares := make(map[string]money.Amount, len(t.LinkedShares))
			for _, ls := range t.LinkedShares {
				shares[ls.ID] = ls.Amount
			}
			return Linkage{Kind: LinkageAllocated, ParentIDs: t.ParentIDs, Shares: shares}
		}
		return Linkage{Kind: LinkageMulti, ParentIDs: t.ParentIDs}
	case t.ParentID != "":
		return Linkage{Kind: LinkageSingle, ParentIDs: []string{t.ParentID}}
	default:
		return Linkage{Kind: LinkageNone}
	}
}

// References reports whether the transaction's linkage names parentID.
func (l Linkage) References(parentID string) bool {
	for _, id := range l.ParentIDs {
		if id == parentID {
			return true
		}
	}
	return false
}

// AllocationFor returns the slice of a refund's amount attributed to
// parentID. With explicit shares the matching entry wins; a missing entry,
// or any non-allocated linkage, falls back to the refund's full amount.
func (t *Transaction) AllocationFor(parentID string) money.Amount {
	l := t.Linkage()
	if l.Kind == LinkageAllocated {
		if share, ok := l.Shares[parentID]; ok {
			return share
		}
	}
	return t.Amount
}
