package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-ledger/cuti"
	"github.com/warp/leave-ledger/factory"
)

func TestPresets_AreValidPolicies(t *testing.T) {
	policies := []cuti.LeavePolicy{
		factory.OfficeStaffPolicy("pol-1", "emp-1"),
		factory.ProjectStaffPolicy("pol-2", "emp-2"),
		factory.ProbationPolicy("pol-3", "emp-3"),
	}
	for _, policy := range policies {
		assert.NoError(t, policy.Limits.Validate())
	}
}

func TestProbationPolicy_ZeroAnnualOverridesTenure(t *testing.T) {
	// The probation preset pins annual leave to zero even for an employee
	// the tenure rule would otherwise grant the default entitlement.
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	emp := cuti.Employee{
		ID: "emp-1", Name: "Andi Wijaya", Department: "Operations",
		Title: "Staff", HireDate: asOf.AddDate(-2, 0, 0),
	}
	policy := factory.ProbationPolicy("pol-1", emp.ID)

	assert.Equal(t, 0, cuti.AnnualEntitlement(emp, &policy, asOf))
}

func TestDemoSeed_ExercisesTheEngine(t *testing.T) {
	asOf := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	snap := factory.DemoSeed(asOf)

	rows := cuti.Aggregate(snap, asOf)

	// Two master employees plus the legacy record.
	require.Len(t, rows, 3)

	// The tenured employee without a policy gets the default entitlement.
	var siti cuti.LedgerRow
	for _, row := range rows {
		if row.Key.Name == "Siti Rahma" {
			siti = row
		}
	}
	assert.Equal(t, cuti.DefaultAnnualEntitlement, siti.Limits.Annual)

	// Exactly one exceedance: the sick budget overrun.
	flagged := cuti.Exceedances(rows)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Rudi Hartono", flagged[0].Row.Key.Name)
	assert.Equal(t, []cuti.Category{cuti.CategorySick}, flagged[0].Categories)
}
