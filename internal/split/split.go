// Package split computes split maps for a shared transaction under the three
// selectable allocation methods.
//
// Every function here is pure: the caller owns the allocation state (shares,
// percentages, and the locked set) and receives an updated copy. The engine
// never holds allocation state between calls, so concurrent edits on
// different states are safe without locking.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/money"
)

// Method selects how a transaction's total is distributed.
type Method string

const (
	// MethodEqual divides the total evenly across all participants. The
	// allocator carries no numeric state for it; exact per-head amounts and
	// remainder placement are the display layer's call.
	MethodEqual Method = "equal"

	// MethodPercentage gives each participant an independent percentage
	// value. Editing one entry touches only that entry; whether the values
	// total 100% is an integrity concern, not an allocation concern.
	MethodPercentage Method = "percentage"

	// MethodDynamic gives each participant an absolute minor-unit share.
	// Explicitly edited participants are locked; the remainder of the total
	// is spread evenly across the unlocked ones.
	MethodDynamic Method = "dynamic"
)

// Shares maps participant ids to absolute minor-unit shares.
type Shares map[string]money.Amount

// Percents maps participant ids to independent percentage values.
type Percents map[string]decimal.Decimal

// Locked is the set of participants whose share was pinned by an explicit
// edit and must survive redistribution.
type Locked map[string]bool

// State is the caller-owned allocation state for one transaction being
// edited. Allocate never mutates a State it is given.
type State struct {
	Shares   Shares
	Percents Percents
	Locked   Locked
}

// Sum returns the total of all share entries.
func (s Shares) Sum() money.Amount {
	var sum money.Amount
	for _, v := range s {
		sum += v
	}
	return sum
}

// Allocate applies one participant edit to the allocation state and returns
// the updated state.
//
// rawValue is the participant's freshly typed input. Unparseable text counts
// as zero and an empty string clears (and, for the dynamic method, unlocks)
// the entry; malformed input never produces an error, because the text
// arrives from a form field mid-edit.
func Allocate(method Method, participantIDs []string, total money.Amount, state State, changedID, rawValue string) State {
	switch method {
	case MethodPercentage:
		return allocatePercentage(state, changedID, rawValue)
	case MethodDynamic:
		return allocateDynamic(participantIDs, total, state, changedID, rawValue)
	default:
		// Equal: no per-participant numeric state to allocate.
		return State{Locked: state.Locked.clone()}
	}
}

// allocatePercentage replaces only the changed participant's percentage.
// Nothing else is recomputed, rescaled or validated here.
func allocatePercentage(state State, changedID, rawValue string) State {
	next := State{
		Shares:   state.Shares.clone(),
		Percents: state.Percents.clone(),
		Locked:   state.Locked.clone(),
	}
	if next.Percents == nil {
		next.Percents = make(Percents, 1)
	}
	next.Percents[changedID] = money.ParsePercent(rawValue)
	return next
}

// allocateDynamic pins the changed participant's share (or unlocks it when
// the input was cleared), then spreads whatever is left of the total evenly
// across the unlocked participants.
//
// Each unlocked participant independently receives remaining/n rounded to
// the nearest minor unit, so with more than one unlocked participant the
// redistributed sum can drift from the remainder by up to n-1 minor units.
// That drift is a known, accepted tolerance: the integrity checker's 1-unit
// split-sum tolerance was tuned against it, and correcting it here would
// change observable output.
func allocateDynamic(participantIDs []string, total money.Amount, state State, changedID, rawValue string) State {
	next := State{
		Shares:   state.Shares.clone(),
		Percents: state.Percents.clone(),
		Locked:   state.Locked.clone(),
	}
	if next.Shares == nil {
		next.Shares = make(Shares, len(participantIDs))
	}
	if next.Locked == nil {
		next.Locked = make(Locked, 1)
	}

	if rawValue == "" {
		delete(next.Locked, changedID)
		delete(next.Shares, changedID)
	} else {
		next.Locked[changedID] = true
		next.Shares[changedID] = money.ParseLenient(rawValue)
	}

	var lockedSum money.Amount
	var unlocked []string
	for _, id := range participantIDs {
		if next.Locked[id] {
			lockedSum += next.Shares[id]
		} else {
			unlocked = append(unlocked, id)
		}
	}

	// No one left to absorb the remainder: the locked values stand, even if
	// they no longer sum to the total. The integrity checker is the
	// backstop that flags such a mismatch.
	if len(unlocked) == 0 {
		return next
	}

	remaining := total - lockedSum
	share := money.Amount(decimal.NewFromInt(int64(remaining)).
		DivRound(decimal.NewFromInt(int64(len(unlocked))), 0).
		IntPart())
	for _, id := range unlocked {
		next.Shares[id] = share
	}
	return next
}

func (s Shares) clone() Shares {
	if s == nil {
		return nil
	}
	c := make(Shares, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

func (p Percents) clone() Percents {
	if p == nil {
		return nil
	}
	c := make(Percents, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func (l Locked) clone() Locked {
	if l == nil {
		return nil
	}
	c := make(Locked, len(l))
	for k, v := range l {
		c[k] = v
	}
	return c
}
