/*
store.go - Persistence interfaces for master data and requests

PURPOSE:
  Defines the interface between the engine and the storage layer. The engine
  itself is pure; stores exist so the surrounding admin suite has somewhere
  to keep employees, policies, and requests between aggregation runs.

SNAPSHOT CONTRACT:
  Snapshot() returns copies of all three collections. Aggregation runs over
  that copy, so concurrent writes through the store cannot race a running
  fold.

TERMINAL DECISIONS:
  DecideRequest enforces the decided-exactly-once rule at the persistence
  boundary too: a store must refuse to overwrite a terminal status with
  ErrRequestDecided, mirroring the guard in Decide.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - store/memory: in-memory store for tests and dev

SEE ALSO:
  - request.go: the in-memory decision guard
  - aggregate.go: consumes Snapshot output
*/
package cuti

import (
	"context"
	"time"
)

// EmployeeStore persists employee master records.
type EmployeeStore interface {
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// PolicyStore persists per-employee leave policies. SavePolicy upserts:
// one employee has at most one policy. Implementations must reject
// negative limits with ErrNegativeLimit.
type PolicyStore interface {
	SavePolicy(ctx context.Context, policy LeavePolicy) error
	GetPolicyByEmployee(ctx context.Context, employeeID string) (*LeavePolicy, error)
	ListPolicies(ctx context.Context) ([]LeavePolicy, error)
}

// RequestStore persists normalized leave requests.
type RequestStore interface {
	SaveRequest(ctx context.Context, req LeaveRequest) error
	GetRequest(ctx context.Context, id string) (*LeaveRequest, error)
	ListRequests(ctx context.Context) ([]LeaveRequest, error)

	// DecideRequest applies a terminal decision to a pending request.
	// Returns ErrRequestNotFound for unknown ids and ErrRequestDecided
	// when the request already carries a terminal status.
	DecideRequest(ctx context.Context, id string, status Status, actor string, at time.Time) (*LeaveRequest, error)
}

// Store combines all persistence interfaces with the snapshot read used by
// aggregation.
type Store interface {
	EmployeeStore
	PolicyStore
	RequestStore

	// Snapshot returns an immutable copy of all three collections.
	Snapshot(ctx context.Context) (Snapshot, error)
}
