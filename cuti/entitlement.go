/*
entitlement.go - Effective annual-leave limit derivation

PURPOSE:
  Derives the effective Annual-category limit for an employee. An explicit
  policy value is authoritative, even when it is zero. Without a policy the
  limit falls back to the tenure rule: one full year of service grants the
  fixed entitlement, anything less grants nothing.

TENURE RULE:
  yearsOfService = (asOf - hireDate) / 365.25 days

  A year of service is 365.25 days, not a calendar anniversary. The
  division uses decimal arithmetic so the boundary comparison does not
  drift through float rounding.

DETERMINISM:
  The as-of date is an explicit parameter. Nothing here reads the system
  clock, so entitlements are reproducible in tests and across time zones.

SEE ALSO:
  - aggregate.go: seeds each ledger row's annual limit from this function
*/
package cuti

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAnnualEntitlement is the annual-leave grant for employees with at
// least one year of service and no explicit policy.
const DefaultAnnualEntitlement = 12

var (
	hoursPerYear = decimal.NewFromFloat(24 * 365.25)
	oneYear      = decimal.NewFromInt(1)
)

// AnnualEntitlement returns the effective Annual-category limit for an
// employee as of the given date.
//
// A non-nil policy is authoritative: its annual limit is returned as-is,
// even if zero. Otherwise the tenure rule applies. A hire date in the
// future yields negative tenure, which is treated as under one year.
// There are no error conditions; a value is always returned.
func AnnualEntitlement(emp Employee, policy *LeavePolicy, asOf time.Time) int {
	if policy != nil {
		return policy.Limits.Annual
	}

	years := decimal.NewFromFloat(asOf.Sub(emp.HireDate).Hours()).Div(hoursPerYear)
	if years.GreaterThanOrEqual(oneYear) {
		return DefaultAnnualEntitlement
	}
	return 0
}

// EffectiveLimits returns the full six-category limit set for an employee:
// the annual limit via AnnualEntitlement, the other five from the policy or
// zero when no policy exists.
func EffectiveLimits(emp Employee, policy *LeavePolicy, asOf time.Time) CategoryCounts {
	limits := CategoryCounts{Annual: AnnualEntitlement(emp, policy, asOf)}
	if policy != nil {
		limits.Deducted = policy.Limits.Deducted
		limits.Project = policy.Limits.Project
		limits.Sick = policy.Limits.Sick
		limits.Special = policy.Limits.Special
		limits.Custom = policy.Limits.Custom
	}
	return limits
}
