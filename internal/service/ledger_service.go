// Package service wires the reconciliation engines behind one facade that
// enforces caller contracts, logs, and counts work. The engines themselves
// stay pure; everything ambient lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/balance"
	"github.com/tallyhq/tally/internal/integrity"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/money"
	"github.com/tallyhq/tally/internal/split"
	"github.com/tallyhq/tally/pkg/metrics"
)

// Ledger is the reconciliation facade over one snapshot-at-a-time ledger.
// It holds no state between calls; concurrent use is safe as long as each
// call gets its own allocation state (the caller owns that).
type Ledger struct{}

// NewLedger creates the reconciliation facade.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Check runs the integrity battery over the snapshot.
//
// A malformed participant list (duplicate ids, an explicit owner entry) is a
// caller bug and fails the call; malformed transaction data never does — it
// comes back as findings.
func (l *Ledger) Check(ctx context.Context, txns []models.Transaction, participants []models.Participant) (*integrity.Report, error) {
	registry, err := models.NewRegistry(participants)
	if err != nil {
		slog.ErrorContext(ctx, "Check rejected", "error", err)
		return nil, fmt.Errorf("invalid participant registry: %w", err)
	}

	report := integrity.Check(txns, registry)

	metrics.ChecksTotal.Inc()
	for _, f := range report.Findings {
		metrics.FindingsTotal.WithLabelValues(string(f.Severity)).Inc()
	}

	slog.InfoContext(ctx, "Integrity check complete",
		"report_id", report.ID,
		"transactions", len(txns),
		"participants", len(participants),
		"issues", report.IssueCount(),
	)
	return report, nil
}

// Summarize derives the per-participant balances from the snapshot.
func (l *Ledger) Summarize(ctx context.Context, txns []models.Transaction) map[string]*balance.Position {
	positions := balance.Summarize(txns)

	metrics.SummariesTotal.Inc()
	slog.DebugContext(ctx, "Balances summarized",
		"transactions", len(txns),
		"counterparties", len(positions),
	)
	return positions
}

// Allocate applies one split edit and returns the updated allocation state.
func (l *Ledger) Allocate(ctx context.Context, method split.Method, participantIDs []string, total money.Amount, state split.State, changedID, rawValue string) split.State {
	next := split.Allocate(method, participantIDs, total, state, changedID, rawValue)

	metrics.AllocationsTotal.WithLabelValues(string(method)).Inc()
	slog.DebugContext(ctx, "Split allocated",
		"method", method,
		"changed", changedID,
		"total", total,
		"locked", len(next.Locked),
	)
	return next
}
