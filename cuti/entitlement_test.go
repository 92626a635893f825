package cuti_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/leave-ledger/cuti"
)

// Tenure is measured in 365.25-day years, so an exact calendar anniversary
// only reaches one full year when the span includes a leap day. The shared
// reference date sits after 2024-02-29 to keep the boundary cases honest.
var refDate = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func employee(hireDate time.Time) cuti.Employee {
	return cuti.Employee{
		ID:         "emp-1",
		Name:       "Andi Wijaya",
		Department: "Operations",
		Title:      "Staff",
		HireDate:   hireDate,
	}
}

// =============================================================================
// TENURE DEFAULTING
// =============================================================================

func TestAnnualEntitlement_TenureRule(t *testing.T) {
	tests := []struct {
		name     string
		hireDate time.Time
		want     int
	}{
		{"exactly one year of service", refDate.AddDate(-1, 0, 0), 12},
		{"one day short of a year", refDate.AddDate(-1, 0, 1), 0},
		{"ten years of service", refDate.AddDate(-10, 0, 0), 12},
		{"hired yesterday", refDate.AddDate(0, 0, -1), 0},
		{"hire date in the future", refDate.AddDate(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cuti.AnnualEntitlement(employee(tt.hireDate), nil, refDate)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// POLICY OVERRIDE
// =============================================================================

func TestAnnualEntitlement_PolicyOverrideWins(t *testing.T) {
	// GIVEN: an employee with ten years of tenure
	// WHEN: a policy sets the annual limit to 5
	// THEN: the policy value wins over the tenure rule

	emp := employee(refDate.AddDate(-10, 0, 0))
	policy := &cuti.LeavePolicy{ID: "pol-1", EmployeeID: emp.ID, Limits: cuti.CategoryCounts{Annual: 5}}

	assert.Equal(t, 5, cuti.AnnualEntitlement(emp, policy, refDate))
}

func TestAnnualEntitlement_PolicyZeroIsAuthoritative(t *testing.T) {
	// An explicit zero is a real limit, not an absent value.
	emp := employee(refDate.AddDate(-10, 0, 0))
	policy := &cuti.LeavePolicy{ID: "pol-1", EmployeeID: emp.ID, Limits: cuti.CategoryCounts{Annual: 0}}

	assert.Equal(t, 0, cuti.AnnualEntitlement(emp, policy, refDate))
}

// =============================================================================
// EFFECTIVE LIMITS
// =============================================================================

func TestEffectiveLimits_NoPolicy(t *testing.T) {
	// Without a policy, every category is zero except annual via tenure.
	emp := employee(refDate.AddDate(-2, 0, 0))

	limits := cuti.EffectiveLimits(emp, nil, refDate)

	assert.Equal(t, cuti.CategoryCounts{Annual: 12}, limits)
}

func TestEffectiveLimits_WithPolicy(t *testing.T) {
	emp := employee(refDate.AddDate(-2, 0, 0))
	policy := &cuti.LeavePolicy{
		ID:         "pol-1",
		EmployeeID: emp.ID,
		Limits:     cuti.CategoryCounts{Annual: 10, Sick: 3, Project: 2},
	}

	limits := cuti.EffectiveLimits(emp, policy, refDate)

	assert.Equal(t, cuti.CategoryCounts{Annual: 10, Sick: 3, Project: 2}, limits)
}
