/*
aggregate.go - The snapshot fold producing aggregated ledger rows

PURPOSE:
  Folds a snapshot of employees, policies, and normalized requests into one
  aggregated row per (name, department) key: per-category approved usage,
  status counters, effective limits, and the remaining annual balance.

ALGORITHM:
  1. Seed one row per known employee with its six effective limits and all
     counters at zero; remaining annual balance starts at the annual limit.
  2. For every request, locate or lazily create (with zero limits) the row
     for its (name, department) key.
  3. Count the request into total and its status counter.
  4. Approved requests only: count into the category tally, and for annual
     leave decrement the remaining balance.
  5. Clamp every remaining balance to >= 0 for reporting. The raw usage
     tally stays unclamped so exceedance detection sees real consumption.

ORDERING:
  The fold is commutative; arrival order of requests cannot affect the
  result. Output rows are sorted by (name, department) so two runs over the
  same snapshot produce identical collections.

DETERMINISM:
  No randomness and no wall-clock reads. The tenure computation inside the
  entitlement seed uses the explicitly supplied as-of date.

SEE ALSO:
  - entitlement.go: limit seeding
  - exceed.go: consumes the rows produced here
*/
package cuti

import (
	"sort"
	"time"
)

// =============================================================================
// SNAPSHOT - Immutable input collections for one aggregation run
// =============================================================================

// Snapshot is the full input to an aggregation run. The engine assumes no
// concurrent mutation of these collections during a call; callers that keep
// mutable stores must hand over a copy.
type Snapshot struct {
	Employees []Employee
	Policies  []LeavePolicy
	Requests  []LeaveRequest
}

// PolicyFor returns the policy owned by the given employee, or nil.
// One employee has at most one policy; the first match wins.
func (s Snapshot) PolicyFor(employeeID string) *LeavePolicy {
	for i := range s.Policies {
		if s.Policies[i].EmployeeID == employeeID {
			return &s.Policies[i]
		}
	}
	return nil
}

// =============================================================================
// LEDGER ROW - Derived per-employee aggregate (never persisted)
// =============================================================================

// LedgerRow is the aggregated usage/limit summary for one (name, department)
// key. Recomputed from scratch on every run, never mutated incrementally.
type LedgerRow struct {
	Key        LedgerKey
	EmployeeID string // empty on synthetic rows for unknown employees
	Title      string

	// Effective limits: annual derived via the entitlement rule, the other
	// five from the policy or zero.
	Limits CategoryCounts

	// Approved usage per category. Unclamped: may exceed the limit.
	Used CategoryCounts

	// Status counters across all requests for this key.
	Pending  int
	Approved int
	Rejected int
	Total    int

	// Remaining annual balance, clamped to >= 0 for reporting.
	RemainingAnnual int
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate folds the snapshot into one LedgerRow per distinct (name,
// department) key present in either the employee set or the request
// collection. The as-of date feeds the tenure rule only.
//
// Aggregate is a total function over well-formed input: it raises no domain
// errors and given identical snapshots returns identical output.
func Aggregate(snap Snapshot, asOf time.Time) []LedgerRow {
	rows := make(map[LedgerKey]*LedgerRow, len(snap.Employees))

	// Seed rows for known employees with their effective limits.
	for _, emp := range snap.Employees {
		limits := EffectiveLimits(emp, snap.PolicyFor(emp.ID), asOf)
		rows[emp.Key()] = &LedgerRow{
			Key:             emp.Key(),
			EmployeeID:      emp.ID,
			Title:           emp.Title,
			Limits:          limits,
			RemainingAnnual: limits.Annual,
		}
	}

	// Fold requests. Unknown keys get synthetic zero-limit rows.
	for _, req := range snap.Requests {
		row, ok := rows[req.Key()]
		if !ok {
			row = &LedgerRow{Key: req.Key(), Title: req.Title}
			rows[req.Key()] = row
		}

		row.Total++
		switch req.Status {
		case StatusPending:
			row.Pending++
		case StatusApproved:
			row.Approved++
		case StatusRejected:
			row.Rejected++
		}

		if req.Status != StatusApproved {
			continue
		}
		row.Used.Add(req.Category, 1)
		if req.Category == CategoryAnnual {
			row.RemainingAnnual--
		}
	}

	// Clamp the reported balance; Used stays raw for exceedance checks.
	out := make([]LedgerRow, 0, len(rows))
	for _, row := range rows {
		if row.RemainingAnnual < 0 {
			row.RemainingAnnual = 0
		}
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}
