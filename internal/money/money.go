// Package money provides exact minor-unit (cent) monetary arithmetic.
//
// All authoritative amounts in the ledger are integers in the smallest
// currency unit; floating-point values never cross a package boundary.
// Display formatting and the lenient text-to-amount policy live here so
// that every caller shares one definition of both.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a signed monetary value in minor units (e.g. cents).
type Amount int64

// displayCurrency controls formatting only. The engine is currency-agnostic;
// it never converts, and the code here exists solely to render messages.
const displayCurrency = gomoney.USD

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool { return a == 0 }

// String formats the amount for humans, e.g. "$12.34" or "-$0.50".
func (a Amount) String() string {
	return gomoney.New(int64(a), displayCurrency).Display()
}

// fraction is the number of decimal digits in one major unit.
var fraction = int32(gomoney.GetCurrency(displayCurrency).Fraction)

// ParseLenient converts free-form major-unit text ("12.34") into minor units,
// rounding half-up to the nearest minor unit.
//
// Invalid or empty text yields zero. This is a deliberate policy, not an
// accident: the input typically arrives from a half-typed form field, and the
// allocator must keep working while the user edits. Callers that need to
// distinguish "cleared" from "zero" should test the raw text for emptiness
// before parsing.
func ParseLenient(raw string) Amount {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return Amount(d.Shift(fraction).Round(0).IntPart())
}

// ParsePercent converts free-form percentage text ("33.3") into an exact
// decimal. Invalid or empty text yields zero, under the same leniency policy
// as ParseLenient.
func ParsePercent(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
