// Package integrity runs the ledger's invariant checks.
//
// The checker is a read-only pass over a transaction snapshot and the
// participant registry. Broken data is exactly what it exists to report, so
// no data problem is ever an error return: every check runs to completion
// and contributes findings even when a transaction is thoroughly malformed.
package integrity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/money"
)

// amountTolerance is the permitted slack, in minor units, when comparing
// derived sums against stored values. It absorbs the allocator's independent
// per-participant rounding.
const amountTolerance = 1

// Check runs the full battery of invariant checks over the snapshot and
// returns the diagnostic report.
//
// Passes run in a fixed order: refund parents, net amounts, references,
// monetary validity, settlement structure. Checks are independent and
// additive; a transaction failing one check still reaches every other.
func Check(txns []models.Transaction, registry models.Registry) *Report {
	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	byID := make(map[string]*models.Transaction, len(txns))
	for i := range txns {
		byID[txns[i].ID] = &txns[i]
	}

	checkRefundParents(report, txns, byID)
	checkNetAmounts(report, txns)
	checkReferences(report, txns, registry)
	checkMonetary(report, txns)
	checkSettlements(report, txns)

	return report
}

// checkRefundParents verifies that every refund's parent reference resolves
// to a transaction in the same snapshot. Each unresolved id is its own
// finding.
func checkRefundParents(report *Report, txns []models.Transaction, byID map[string]*models.Transaction) {
	for i := range txns {
		t := &txns[i]
		link := t.Linkage()
		if link.Kind == models.LinkageNone {
			continue
		}
		for _, parentID := range link.ParentIDs {
			if _, ok := byID[parentID]; !ok {
				report.fail(t.ID, fmt.Sprintf(
					"Orphan refund %q: parent transaction %q not found",
					t.DisplayName(), parentID))
			}
		}
	}
}

// checkNetAmounts recomputes each expense's net amount from the live refund
// graph and compares it to the stored cache, within one minor unit.
func checkNetAmounts(report *Report, txns []models.Transaction) {
	for i := range txns {
		t := &txns[i]
		if t.Type == models.TypeRefund || t.IsSettlement() || t.NetAmount == nil {
			continue
		}

		expected := t.Amount
		for j := range txns {
			r := &txns[j]
			if r.Amount >= 0 || r.IsSettlement() || r.Type == models.TypeIncome {
				continue
			}
			if !r.Linkage().References(t.ID) {
				continue
			}
			expected += r.AllocationFor(t.ID)
		}

		stored := *t.NetAmount
		if diff := (expected - stored).Abs(); diff > amountTolerance {
			report.fail(t.ID, fmt.Sprintf(
				"Net Amount mismatch for %q: expected %s, stored %s (off by %s)",
				t.DisplayName(), expected, stored, diff))
		}
	}
}

// checkReferences verifies that every identifier used as a payer, a named
// participant, or a split key is the owner or a registered participant.
func checkReferences(report *Report, txns []models.Transaction, registry models.Registry) {
	for i := range txns {
		t := &txns[i]
		if !registry.Contains(t.Payer) {
			report.fail(t.ID, fmt.Sprintf(
				"Unknown payer %q on %q", t.Payer, t.DisplayName()))
		}
		for _, id := range t.Participants {
			if !registry.Contains(id) {
				report.fail(t.ID, fmt.Sprintf(
					"Unknown participant %q on %q", id, t.DisplayName()))
			}
		}
		for _, id := range sortedKeys(t.Splits) {
			if !registry.Contains(id) {
				report.fail(t.ID, fmt.Sprintf(
					"Unknown split participant %q on %q", id, t.DisplayName()))
			}
		}
	}
}

// checkMonetary covers the per-transaction value invariants: amount, split
// sum, timestamp, and the type enumeration.
func checkMonetary(report *Report, txns []models.Transaction) {
	for i := range txns {
		t := &txns[i]

		if t.Amount.IsZero() {
			report.warn(t.ID, fmt.Sprintf("Zero amount on %q", t.DisplayName()))
		}

		if len(t.Splits) > 0 {
			var sum money.Amount
			for _, v := range t.Splits {
				sum += v
			}
			if diff := (sum.Abs() - t.Amount.Abs()).Abs(); diff > amountTolerance {
				report.fail(t.ID, fmt.Sprintf(
					"Split sum mismatch on %q: splits total %s against amount %s",
					t.DisplayName(), sum, t.Amount))
			}
		}

		if t.Timestamp.IsZero() {
			report.fail(t.ID, fmt.Sprintf("Invalid timestamp on %q", t.DisplayName()))
		}

		if !t.Type.Valid() {
			report.fail(t.ID, fmt.Sprintf(
				"Unknown transaction type %q on %q", t.Type, t.DisplayName()))
		}
	}
}

// sortedKeys keeps finding order stable across runs; map iteration order
// must never leak into a report.
func sortedKeys(m map[string]money.Amount) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkSettlements verifies settlement structure: exactly one recipient,
// distinct from the payer.
func checkSettlements(report *Report, txns []models.Transaction) {
	for i := range txns {
		t := &txns[i]
		if !t.IsSettlement() {
			continue
		}

		recipient, ok := t.Recipient()
		if !ok {
			report.fail(t.ID, fmt.Sprintf(
				"Settlement %q names no recipient", t.DisplayName()))
			continue
		}
		if len(t.Participants) > 1 {
			report.warn(t.ID, fmt.Sprintf(
				"Settlement %q names %d recipients; only the first is honored",
				t.DisplayName(), len(t.Participants)))
		}
		if recipient == t.Payer {
			report.fail(t.ID, fmt.Sprintf(
				"Settlement %q pays the same person it charges", t.DisplayName()))
		}
	}
}
