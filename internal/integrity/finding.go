package integrity

import (
	"time"
)

// Severity grades a finding. There is no informational grade; everything
// reported counts toward the issue total.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one reported integrity issue.
type Finding struct {
	Severity Severity `json:"severity"`

	// TransactionID names the transaction the finding is about, when there
	// is one.
	TransactionID string `json:"transactionId,omitempty"`

	Message string `json:"message"`
}

// Report is the result of one full check pass over a ledger snapshot.
// Findings appear in fixed pass order, and within a pass in the order the
// caller supplied the transactions; nothing is deduplicated or suppressed.
type Report struct {
	// ID identifies this report instance for downstream alerting surfaces.
	ID string `json:"id"`

	GeneratedAt time.Time `json:"generatedAt"`

	Findings []Finding `json:"findings"`
}

// IssueCount returns the number of findings. Warnings and errors both
// count; there is nothing else.
func (r *Report) IssueCount() int { return len(r.Findings) }

// HasErrors reports whether any finding is of error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) warn(txnID, message string) {
	r.Findings = append(r.Findings, Finding{Severity: SeverityWarning, TransactionID: txnID, Message: message})
}

func (r *Report) fail(txnID, message string) {
	r.Findings = append(r.Findings, Finding{Severity: SeverityError, TransactionID: txnID, Message: message})
}
