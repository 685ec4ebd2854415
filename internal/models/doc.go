// Package models defines the core domain models for the tally
// reconciliation engine.
//
// # Models
//
//   - Participant: one person in the shared ledger
//   - Registry: the fixed participant set, with the reserved owner id
//   - Transaction: one ledger event (expense, income, refund, settlement)
//   - Linkage: a refund's resolved reference(s) to its parent expense(s)
//
// # Design principles
//
//  1. **Immutable snapshots**: transactions are created outside this module
//     and supplied wholesale per invocation; nothing here mutates them.
//  2. **Integer money**: every amount is a minor-unit integer
//     (money.Amount); floating-point amounts never appear.
//  3. **Ids over pointers**: transactions reference each other and
//     participants by opaque string ids, never by pointer, so a snapshot
//     is trivially copyable and serializable.
//  4. **Optional-field shapes resolved once**: the three ways a refund can
//     reference its parents collapse into the Linkage variant instead of
//     being re-examined at every read site.
package models
