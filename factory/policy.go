/*
Package factory provides preset leave policies and a demo dataset.

PURPOSE:
  HR administrators rarely hand-tune six limits per employee; they pick a
  template. The presets here are the templates the admin UI offers, and
  DemoSeed builds a small dataset that exercises the engine end to end
  (conversion rule, clamping, exceedance) for demos and API tests.

SEE ALSO:
  - cuti/types.go: LeavePolicy and CategoryCounts
  - api/handlers.go: the demo seed endpoint
*/
package factory

import (
	"time"

	"github.com/warp/leave-ledger/cuti"
)

// =============================================================================
// POLICY PRESETS
// =============================================================================

// OfficeStaffPolicy is the standard template for office staff: the default
// annual entitlement plus small sick and special budgets.
func OfficeStaffPolicy(id, employeeID string) cuti.LeavePolicy {
	return cuti.LeavePolicy{
		ID:         id,
		EmployeeID: employeeID,
		Limits: cuti.CategoryCounts{
			Annual:  cuti.DefaultAnnualEntitlement,
			Sick:    6,
			Special: 3,
		},
	}
}

// ProjectStaffPolicy is the template for project-assigned staff, trading
// part of the annual budget for project leave.
func ProjectStaffPolicy(id, employeeID string) cuti.LeavePolicy {
	return cuti.LeavePolicy{
		ID:         id,
		EmployeeID: employeeID,
		Limits: cuti.CategoryCounts{
			Annual:  10,
			Project: 6,
			Sick:    6,
		},
	}
}

// ProbationPolicy is the template for employees still on probation: no
// annual budget yet (the explicit zero overrides the tenure rule), sick
// leave only.
func ProbationPolicy(id, employeeID string) cuti.LeavePolicy {
	return cuti.LeavePolicy{
		ID:         id,
		EmployeeID: employeeID,
		Limits: cuti.CategoryCounts{
			Sick: 3,
		},
	}
}

// =============================================================================
// DEMO SEED
// =============================================================================

// DemoSeed returns a small dataset for demos: one tenured employee without
// a policy (tenure rule applies), one project employee over the sick budget
// (triggers the warning banner), and a legacy request from an employee
// missing from the master set (synthetic row).
func DemoSeed(asOf time.Time) cuti.Snapshot {
	siti := cuti.Employee{
		ID:         "emp-siti",
		Name:       "Siti Rahma",
		Department: "Finance",
		Title:      "Analyst",
		HireDate:   asOf.AddDate(-3, 0, 0),
	}
	rudi := cuti.Employee{
		ID:         "emp-rudi",
		Name:       "Rudi Hartono",
		Department: "Engineering",
		Title:      "Site Engineer",
		HireDate:   asOf.AddDate(-1, -6, 0),
	}

	rudiPolicy := ProjectStaffPolicy("pol-rudi", rudi.ID)
	rudiPolicy.Limits.Sick = 1

	day := func(offset int) time.Time { return asOf.AddDate(0, 0, offset) }
	requests := []cuti.LeaveRequest{
		{
			ID: "req-1", EmployeeID: siti.ID, Name: siti.Name,
			Department: siti.Department, Title: siti.Title,
			Category: cuti.CategoryAnnual, StartDate: day(-30), EndDate: day(-28),
			Note: "annual holiday", Status: cuti.StatusApproved, CreatedAt: day(-40),
		},
		{
			ID: "req-2", EmployeeID: siti.ID, Name: siti.Name,
			Department: siti.Department, Title: siti.Title,
			Category: cuti.CategoryAnnual, StartDate: day(7), EndDate: day(8),
			Note: "family event", Status: cuti.StatusPending, CreatedAt: day(-2),
		},
		{
			ID: "req-3", EmployeeID: rudi.ID, Name: rudi.Name,
			Department: rudi.Department, Title: rudi.Title,
			Category: cuti.CategorySick, StartDate: day(-20), EndDate: day(-20),
			Note: "fever", AttachmentID: "doc-101",
			Status: cuti.StatusApproved, CreatedAt: day(-21),
		},
		{
			ID: "req-4", EmployeeID: rudi.ID, Name: rudi.Name,
			Department: rudi.Department, Title: rudi.Title,
			Category: cuti.CategorySick, StartDate: day(-10), EndDate: day(-9),
			Note: "flu", AttachmentID: "doc-102",
			Status: cuti.StatusApproved, CreatedAt: day(-11),
		},
		{
			// Legacy record: no matching employee in the master set.
			ID: "req-5", Name: "Tono Legacy", Department: "Warehouse", Title: "Operator",
			Category: cuti.CategoryAnnual, StartDate: day(-5), EndDate: day(-5),
			Note: "migrated from old system", Status: cuti.StatusApproved, CreatedAt: day(-6),
		},
	}

	return cuti.Snapshot{
		Employees: []cuti.Employee{siti, rudi},
		Policies:  []cuti.LeavePolicy{rudiPolicy},
		Requests:  requests,
	}
}
