// Package memory provides an in-memory cuti.Store implementation
// for testing and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/warp/leave-ledger/cuti"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[string]cuti.Employee
	policies  map[string]cuti.LeavePolicy // keyed by employee id
	requests  map[string]cuti.LeaveRequest
}

func New() *Store {
	return &Store{
		employees: make(map[string]cuti.Employee),
		policies:  make(map[string]cuti.LeavePolicy),
		requests:  make(map[string]cuti.LeaveRequest),
	}
}

// Compile-time check that Store implements cuti.Store.
var _ cuti.Store = (*Store)(nil)

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(_ context.Context, emp cuti.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (*cuti.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, cuti.ErrEmployeeNotFound
	}
	return &emp, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]cuti.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]cuti.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		out = append(out, emp)
	}
	return out, nil
}

// =============================================================================
// POLICIES
// =============================================================================

func (s *Store) SavePolicy(_ context.Context, policy cuti.LeavePolicy) error {
	if err := policy.Limits.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.EmployeeID] = policy
	return nil
}

func (s *Store) GetPolicyByEmployee(_ context.Context, employeeID string) (*cuti.LeavePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[employeeID]
	if !ok {
		return nil, nil
	}
	return &policy, nil
}

func (s *Store) ListPolicies(_ context.Context) ([]cuti.LeavePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]cuti.LeavePolicy, 0, len(s.policies))
	for _, policy := range s.policies {
		out = append(out, policy)
	}
	return out, nil
}

// =============================================================================
// REQUESTS
// =============================================================================

func (s *Store) SaveRequest(_ context.Context, req cuti.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = req
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (*cuti.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, cuti.ErrRequestNotFound
	}
	return &req, nil
}

func (s *Store) ListRequests(_ context.Context) ([]cuti.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]cuti.LeaveRequest, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, req)
	}
	return out, nil
}

func (s *Store) DecideRequest(_ context.Context, id string, status cuti.Status, actor string, at time.Time) (*cuti.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, cuti.ErrRequestNotFound
	}
	if err := cuti.Decide(&req, status, actor, at); err != nil {
		return nil, err
	}
	s.requests[id] = req
	return &req, nil
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot returns a copy of all collections. The copy keeps a running
// aggregation safe from concurrent writes through the store.
func (s *Store) Snapshot(ctx context.Context) (cuti.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := cuti.Snapshot{
		Employees: make([]cuti.Employee, 0, len(s.employees)),
		Policies:  make([]cuti.LeavePolicy, 0, len(s.policies)),
		Requests:  make([]cuti.LeaveRequest, 0, len(s.requests)),
	}
	for _, emp := range s.employees {
		snap.Employees = append(snap.Employees, emp)
	}
	for _, policy := range s.policies {
		snap.Policies = append(snap.Policies, policy)
	}
	for _, req := range s.requests {
		snap.Requests = append(snap.Requests, req)
	}
	return snap, nil
}
