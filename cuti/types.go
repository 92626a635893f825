/*
Package cuti implements the leave quota ledger and aggregation engine.

PURPOSE:
  This package contains the domain rules for leave ("cuti") administration:
  entitlement computation from tenure and per-employee policy, normalization
  of submitted leave requests (including the sick-leave conversion rule),
  aggregation of approved usage across the six leave categories, and
  cross-category quota-exceedance detection.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: closed six-value leave category enumeration
  - Status: request approval status (pending/approved/rejected)
  - Employee, LeavePolicy, LeaveRequest: the inbound data contracts
  - CategoryCounts: per-category integer tally used for limits and usage

DESIGN PRINCIPLES:
  1. Immutability: the engine folds immutable snapshots; it never mutates
     its inputs and shares no state across runs
  2. Determinism: every tenure computation takes an explicit as-of date;
     no function in this package reads the system clock
  3. Type Safety: categories and statuses are closed enumerations so an
     unknown category is rejected at the boundary, not discovered mid-fold

SEE ALSO:
  - entitlement.go: effective annual limit derivation
  - normalize.go: request validation and the conversion rule
  - aggregate.go: the snapshot fold producing ledger rows
  - exceed.go: quota-exceedance scan
*/
package cuti

import "time"

// =============================================================================
// CATEGORY - Closed set of leave categories
// =============================================================================

// Category identifies one of the six fixed leave categories. All limits and
// usage tallies are keyed by this set; no other category may appear.
type Category string

const (
	CategoryAnnual   Category = "annual"
	CategoryDeducted Category = "deducted"
	CategoryProject  Category = "project"
	CategorySick     Category = "sick"
	CategorySpecial  Category = "special"
	CategoryCustom   Category = "custom"
)

// Categories returns the full category set in canonical order.
// The order is fixed so reports and error lists are stable.
func Categories() []Category {
	return []Category{
		CategoryAnnual,
		CategoryDeducted,
		CategoryProject,
		CategorySick,
		CategorySpecial,
		CategoryCustom,
	}
}

// ParseCategory converts an external category label into a Category.
// Labels outside the fixed set are a data-integrity fault from the caller.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAnnual, CategoryDeducted, CategoryProject,
		CategorySick, CategorySpecial, CategoryCustom:
		return Category(s), nil
	}
	return "", &UnknownCategoryError{Label: s}
}

// =============================================================================
// STATUS - Request approval status
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status can no longer change.
// A request is decided exactly once; approved and rejected are final.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus converts an external status label into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// =============================================================================
// CATEGORY COUNTS - Per-category integer tally
// =============================================================================

// CategoryCounts holds one non-negative integer per leave category.
// It doubles as the per-category limit set on a policy and as the
// approved-usage tally on an aggregated ledger row.
type CategoryCounts struct {
	Annual   int `json:"annual"`
	Deducted int `json:"deducted"`
	Project  int `json:"project"`
	Sick     int `json:"sick"`
	Special  int `json:"special"`
	Custom   int `json:"custom"`
}

// Of returns the count for a category.
func (c CategoryCounts) Of(cat Category) int {
	switch cat {
	case CategoryAnnual:
		return c.Annual
	case CategoryDeducted:
		return c.Deducted
	case CategoryProject:
		return c.Project
	case CategorySick:
		return c.Sick
	case CategorySpecial:
		return c.Special
	case CategoryCustom:
		return c.Custom
	}
	return 0
}

// Add increments the count for a category by n.
func (c *CategoryCounts) Add(cat Category, n int) {
	switch cat {
	case CategoryAnnual:
		c.Annual += n
	case CategoryDeducted:
		c.Deducted += n
	case CategoryProject:
		c.Project += n
	case CategorySick:
		c.Sick += n
	case CategorySpecial:
		c.Special += n
	case CategoryCustom:
		c.Custom += n
	}
}

// Validate rejects negative counts. Negative limits on a policy are a caller
// contract violation and are refused at the boundary, not silently tolerated.
func (c CategoryCounts) Validate() error {
	for _, cat := range Categories() {
		if c.Of(cat) < 0 {
			return ErrNegativeLimit
		}
	}
	return nil
}

// =============================================================================
// MASTER RECORDS - Employee and per-employee policy
// =============================================================================

// Employee is an HR master record. Immutable for the duration of a ledger
// computation; owned by the excluded administration layer.
type Employee struct {
	ID         string
	Name       string
	Department string
	Title      string
	HireDate   time.Time
}

// Key returns the (name, department) ledger key for the employee.
func (e Employee) Key() LedgerKey {
	return LedgerKey{Name: e.Name, Department: e.Department}
}

// LeavePolicy is the per-employee quota master record. At most one policy
// exists per employee; absence of a policy is valid and implies all limits
// are zero except annual leave, which falls back to the tenure rule.
type LeavePolicy struct {
	ID         string
	EmployeeID string
	Limits     CategoryCounts
}

// =============================================================================
// LEAVE REQUEST - Normalized request record
// =============================================================================

// LeaveRequest is a normalized leave request as it enters the ledger.
// Requests carry the employee identity fields rather than only an id because
// some requests reference employees absent from the master set (walk-in or
// legacy records); aggregation groups by (name, department).
type LeaveRequest struct {
	ID           string
	EmployeeID   string // optional; empty for walk-in/legacy records
	Name         string
	Department   string
	Title        string
	Category     Category
	StartDate    time.Time
	EndDate      time.Time
	Note         string
	AttachmentID string // optional reference into the excluded storage layer
	Status       Status
	CreatedAt    time.Time

	// Decision audit fields, set exactly once by Decide.
	DecidedBy *string
	DecidedAt *time.Time
}

// Key returns the (name, department) ledger key for the request.
func (r LeaveRequest) Key() LedgerKey {
	return LedgerKey{Name: r.Name, Department: r.Department}
}

// LedgerKey identifies an aggregated ledger row.
type LedgerKey struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Less orders keys by name, then department. Used to keep aggregation
// output stable across runs.
func (k LedgerKey) Less(other LedgerKey) bool {
	if k.Name != other.Name {
		return k.Name < other.Name
	}
	return k.Department < other.Department
}
