package cuti_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-ledger/cuti"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func approvedReq(name, dept string, cat cuti.Category) cuti.LeaveRequest {
	return request(name, dept, cat, cuti.StatusApproved)
}

func request(name, dept string, cat cuti.Category, status cuti.Status) cuti.LeaveRequest {
	return cuti.LeaveRequest{
		Name:       name,
		Department: dept,
		Title:      "Staff",
		Category:   cat,
		StartDate:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Status:     status,
	}
}

func findRow(t *testing.T, rows []cuti.LedgerRow, name, dept string) cuti.LedgerRow {
	t.Helper()
	for _, row := range rows {
		if row.Key.Name == name && row.Key.Department == dept {
			return row
		}
	}
	t.Fatalf("no row for %s/%s", name, dept)
	return cuti.LedgerRow{}
}

// =============================================================================
// STATUS COUNTING
// =============================================================================

func TestAggregate_OnlyApprovedCountsTowardUsage(t *testing.T) {
	// GIVEN: three requests for the same employee and category, one per status
	// WHEN: the snapshot is aggregated
	// THEN: the used-count for the category is exactly 1

	snap := cuti.Snapshot{
		Employees: []cuti.Employee{employee(refDate.AddDate(-2, 0, 0))},
		Requests: []cuti.LeaveRequest{
			request("Andi Wijaya", "Operations", cuti.CategoryProject, cuti.StatusPending),
			request("Andi Wijaya", "Operations", cuti.CategoryProject, cuti.StatusApproved),
			request("Andi Wijaya", "Operations", cuti.CategoryProject, cuti.StatusRejected),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1, row.Used.Project)
	assert.Equal(t, 1, row.Pending)
	assert.Equal(t, 1, row.Approved)
	assert.Equal(t, 1, row.Rejected)
	assert.Equal(t, 3, row.Total)
}

// =============================================================================
// REMAINING BALANCE AND CLAMPING
// =============================================================================

func TestAggregate_ClampsReportedBalanceButKeepsRawUsage(t *testing.T) {
	// GIVEN: an annual limit of 2 and three approved annual requests
	// THEN: reported remaining is clamped to 0 while usage stays at 3

	emp := employee(refDate.AddDate(-2, 0, 0))
	snap := cuti.Snapshot{
		Employees: []cuti.Employee{emp},
		Policies: []cuti.LeavePolicy{
			{ID: "pol-1", EmployeeID: emp.ID, Limits: cuti.CategoryCounts{Annual: 2}},
		},
		Requests: []cuti.LeaveRequest{
			approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual),
			approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual),
			approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	row := findRow(t, rows, "Andi Wijaya", "Operations")

	assert.Equal(t, 0, row.RemainingAnnual)
	assert.Equal(t, 3, row.Used.Annual)
}

func TestAggregate_NonAnnualUsageDoesNotTouchBalance(t *testing.T) {
	emp := employee(refDate.AddDate(-2, 0, 0))
	snap := cuti.Snapshot{
		Employees: []cuti.Employee{emp},
		Policies: []cuti.LeavePolicy{
			{ID: "pol-1", EmployeeID: emp.ID, Limits: cuti.CategoryCounts{Annual: 12, Sick: 2}},
		},
		Requests: []cuti.LeaveRequest{
			approvedReq("Andi Wijaya", "Operations", cuti.CategorySick),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	row := findRow(t, rows, "Andi Wijaya", "Operations")

	assert.Equal(t, 12, row.RemainingAnnual)
	assert.Equal(t, 1, row.Used.Sick)
}

// =============================================================================
// UNKNOWN EMPLOYEES
// =============================================================================

func TestAggregate_UnknownEmployeeGetsSyntheticZeroLimitRow(t *testing.T) {
	// A request referencing a (name, department) pair absent from the
	// employee master set still produces a row, with all limits zero.

	snap := cuti.Snapshot{
		Requests: []cuti.LeaveRequest{
			approvedReq("Budi Santoso", "Warehouse", cuti.CategoryAnnual),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Empty(t, row.EmployeeID)
	assert.Equal(t, cuti.CategoryCounts{}, row.Limits)
	assert.Equal(t, 1, row.Used.Annual)
	assert.Equal(t, 0, row.RemainingAnnual)
}

func TestAggregate_SameNameDifferentDepartmentAreSeparateRows(t *testing.T) {
	snap := cuti.Snapshot{
		Requests: []cuti.LeaveRequest{
			approvedReq("Budi Santoso", "Warehouse", cuti.CategoryAnnual),
			approvedReq("Budi Santoso", "Finance", cuti.CategoryAnnual),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	assert.Len(t, rows, 2)
}

// =============================================================================
// DETERMINISM
// =============================================================================

func TestAggregate_IdempotentAcrossRuns(t *testing.T) {
	emp := employee(refDate.AddDate(-2, 0, 0))
	snap := cuti.Snapshot{
		Employees: []cuti.Employee{emp},
		Policies: []cuti.LeavePolicy{
			{ID: "pol-1", EmployeeID: emp.ID, Limits: cuti.CategoryCounts{Annual: 6, Sick: 2}},
		},
		Requests: []cuti.LeaveRequest{
			approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual),
			approvedReq("Budi Santoso", "Warehouse", cuti.CategoryProject),
			request("Andi Wijaya", "Operations", cuti.CategorySick, cuti.StatusPending),
		},
	}

	first := cuti.Aggregate(snap, refDate)
	second := cuti.Aggregate(snap, refDate)

	assert.Equal(t, first, second)
}

func TestAggregate_RequestOrderDoesNotMatter(t *testing.T) {
	emp := employee(refDate.AddDate(-2, 0, 0))
	reqs := []cuti.LeaveRequest{
		approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual),
		request("Andi Wijaya", "Operations", cuti.CategoryAnnual, cuti.StatusRejected),
		approvedReq("Budi Santoso", "Warehouse", cuti.CategoryCustom),
		request("Andi Wijaya", "Operations", cuti.CategorySick, cuti.StatusPending),
	}
	reversed := make([]cuti.LeaveRequest, len(reqs))
	for i, r := range reqs {
		reversed[len(reqs)-1-i] = r
	}

	forward := cuti.Aggregate(cuti.Snapshot{Employees: []cuti.Employee{emp}, Requests: reqs}, refDate)
	backward := cuti.Aggregate(cuti.Snapshot{Employees: []cuti.Employee{emp}, Requests: reversed}, refDate)

	assert.Equal(t, forward, backward)
}

func TestAggregate_DoesNotMutateSnapshot(t *testing.T) {
	emp := employee(refDate.AddDate(-2, 0, 0))
	snap := cuti.Snapshot{
		Employees: []cuti.Employee{emp},
		Requests:  []cuti.LeaveRequest{approvedReq("Andi Wijaya", "Operations", cuti.CategoryAnnual)},
	}
	origReq := snap.Requests[0]

	cuti.Aggregate(snap, refDate)

	assert.Equal(t, origReq, snap.Requests[0])
}

// =============================================================================
// FULL SCENARIO
// =============================================================================

func TestAggregate_TwoEmployeeScenario(t *testing.T) {
	// Employee A: two years of tenure, no policy -> annual limit 12.
	// Three approved + one pending annual request.
	// Employee B: policy with sick limit 1, two approved sick requests.

	empA := cuti.Employee{
		ID: "emp-a", Name: "Employee A", Department: "Operations",
		Title: "Staff", HireDate: refDate.AddDate(-2, 0, 0),
	}
	empB := cuti.Employee{
		ID: "emp-b", Name: "Employee B", Department: "Operations",
		Title: "Staff", HireDate: refDate.AddDate(-3, 0, 0),
	}

	snap := cuti.Snapshot{
		Employees: []cuti.Employee{empA, empB},
		Policies: []cuti.LeavePolicy{
			{ID: "pol-b", EmployeeID: "emp-b", Limits: cuti.CategoryCounts{Annual: 12, Sick: 1}},
		},
		Requests: []cuti.LeaveRequest{
			approvedReq("Employee A", "Operations", cuti.CategoryAnnual),
			approvedReq("Employee A", "Operations", cuti.CategoryAnnual),
			approvedReq("Employee A", "Operations", cuti.CategoryAnnual),
			request("Employee A", "Operations", cuti.CategoryAnnual, cuti.StatusPending),
			approvedReq("Employee B", "Operations", cuti.CategorySick),
			approvedReq("Employee B", "Operations", cuti.CategorySick),
		},
	}

	rows := cuti.Aggregate(snap, refDate)
	require.Len(t, rows, 2)

	rowA := findRow(t, rows, "Employee A", "Operations")
	assert.Equal(t, 12, rowA.Limits.Annual)
	assert.Equal(t, 3, rowA.Used.Annual)
	assert.Equal(t, 9, rowA.RemainingAnnual)
	assert.Equal(t, 1, rowA.Pending)

	rowB := findRow(t, rows, "Employee B", "Operations")
	assert.Equal(t, 2, rowB.Used.Sick)

	// A is within limits, B exceeds its sick budget.
	flagged := cuti.Exceedances(rows)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Employee B", flagged[0].Row.Key.Name)
	assert.Equal(t, []cuti.Category{cuti.CategorySick}, flagged[0].Categories)
}
