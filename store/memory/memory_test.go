package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-ledger/cuti"
	"github.com/warp/leave-ledger/store/memory"
)

func TestMemory_DecideRequest_ExactlyOnce(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	req := cuti.LeaveRequest{
		ID: "req-1", Name: "Andi Wijaya", Department: "Operations", Title: "Staff",
		Category:  cuti.CategoryAnnual,
		StartDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Status:    cuti.StatusPending,
		CreatedAt: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveRequest(ctx, req))

	_, err := store.DecideRequest(ctx, "req-1", cuti.StatusApproved, "manager-1", time.Now())
	require.NoError(t, err)

	_, err = store.DecideRequest(ctx, "req-1", cuti.StatusRejected, "manager-2", time.Now())
	assert.ErrorIs(t, err, cuti.ErrRequestDecided)
}

func TestMemory_SnapshotIsACopy(t *testing.T) {
	// Mutating the store after taking a snapshot must not change the
	// snapshot a running aggregation sees.

	store := memory.New()
	ctx := context.Background()

	emp := cuti.Employee{
		ID: "emp-1", Name: "Andi Wijaya", Department: "Operations",
		Title: "Staff", HireDate: time.Date(2022, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Employees, 1)

	emp.Name = "Renamed"
	require.NoError(t, store.SaveEmployee(ctx, emp))

	assert.Equal(t, "Andi Wijaya", snap.Employees[0].Name)
}

func TestMemory_NegativeLimitRejected(t *testing.T) {
	store := memory.New()

	err := store.SavePolicy(context.Background(), cuti.LeavePolicy{
		ID: "pol-1", EmployeeID: "emp-1",
		Limits: cuti.CategoryCounts{Project: -2},
	})
	assert.ErrorIs(t, err, cuti.ErrNegativeLimit)
}
