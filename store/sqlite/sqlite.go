/*
Package sqlite provides a SQLite-backed implementation of cuti.Store.

PURPOSE:
  Persists employees, leave policies, and leave requests for the admin
  suite. The engine itself never touches the database: aggregation runs
  over the snapshot this store hands out.

KEY TABLES:
  employees: HR master records
  policies:  per-employee quota limits (one row per employee, upserted)
  requests:  normalized leave requests with their approval status

TERMINAL DECISIONS:
  DecideRequest uses a guarded UPDATE (WHERE status = 'pending') so a
  request can be decided exactly once even under concurrent approvers.
  A zero-row update is then disambiguated into ErrRequestNotFound or
  ErrRequestDecided.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/cuti.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - cuti/store.go: interface definitions
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-ledger/cuti"
)

// Store implements cuti.Store using SQLite.
type Store struct {
	db *sql.DB
}

// Compile-time check that Store implements cuti.Store.
var _ cuti.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (HR master records)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL,
		title TEXT NOT NULL,
		hire_date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_name_department
		ON employees(name, department);

	-- Policies (one per employee, six non-negative limits)
	CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL UNIQUE,
		limit_annual INTEGER NOT NULL CHECK (limit_annual >= 0),
		limit_deducted INTEGER NOT NULL CHECK (limit_deducted >= 0),
		limit_project INTEGER NOT NULL CHECK (limit_project >= 0),
		limit_sick INTEGER NOT NULL CHECK (limit_sick >= 0),
		limit_special INTEGER NOT NULL CHECK (limit_special >= 0),
		limit_custom INTEGER NOT NULL CHECK (limit_custom >= 0)
	);

	-- Requests (normalized; status transitions exactly once)
	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT,
		name TEXT NOT NULL,
		department TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		attachment_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_name_department
		ON requests(name, department);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON requests(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp cuti.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, department, title, hire_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			department = excluded.department,
			title = excluded.title,
			hire_date = excluded.hire_date`,
		emp.ID, emp.Name, emp.Department, emp.Title, emp.HireDate.Format("2006-01-02"))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*cuti.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, department, title, hire_date
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, cuti.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]cuti.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, department, title, hire_date
		FROM employees ORDER BY name, department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cuti.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(sc scanner) (*cuti.Employee, error) {
	var emp cuti.Employee
	var hireDate string
	if err := sc.Scan(&emp.ID, &emp.Name, &emp.Department, &emp.Title, &hireDate); err != nil {
		return nil, err
	}
	parsed, err := time.Parse("2006-01-02", hireDate)
	if err != nil {
		return nil, fmt.Errorf("invalid hire_date %q: %w", hireDate, err)
	}
	emp.HireDate = parsed
	return &emp, nil
}

// =============================================================================
// POLICIES
// =============================================================================

func (s *Store) SavePolicy(ctx context.Context, policy cuti.LeavePolicy) error {
	if err := policy.Limits.Validate(); err != nil {
		return err
	}
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies (id, employee_id,
			limit_annual, limit_deducted, limit_project,
			limit_sick, limit_special, limit_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			limit_annual = excluded.limit_annual,
			limit_deducted = excluded.limit_deducted,
			limit_project = excluded.limit_project,
			limit_sick = excluded.limit_sick,
			limit_special = excluded.limit_special,
			limit_custom = excluded.limit_custom`,
		policy.ID, policy.EmployeeID,
		policy.Limits.Annual, policy.Limits.Deducted, policy.Limits.Project,
		policy.Limits.Sick, policy.Limits.Special, policy.Limits.Custom)
	return err
}

func (s *Store) GetPolicyByEmployee(ctx context.Context, employeeID string) (*cuti.LeavePolicy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id,
			limit_annual, limit_deducted, limit_project,
			limit_sick, limit_special, limit_custom
		FROM policies WHERE employee_id = ?`, employeeID)

	policy, err := scanPolicy(row)
	if err == sql.ErrNoRows {
		return nil, nil // absence of a policy is valid
	}
	if err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *Store) ListPolicies(ctx context.Context) ([]cuti.LeavePolicy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id,
			limit_annual, limit_deducted, limit_project,
			limit_sick, limit_special, limit_custom
		FROM policies ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cuti.LeavePolicy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *policy)
	}
	return out, rows.Err()
}

func scanPolicy(sc scanner) (*cuti.LeavePolicy, error) {
	var p cuti.LeavePolicy
	err := sc.Scan(&p.ID, &p.EmployeeID,
		&p.Limits.Annual, &p.Limits.Deducted, &p.Limits.Project,
		&p.Limits.Sick, &p.Limits.Special, &p.Limits.Custom)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// =============================================================================
// REQUESTS
// =============================================================================

func (s *Store) SaveRequest(ctx context.Context, req cuti.LeaveRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	var decidedBy, decidedAt any
	if req.DecidedBy != nil {
		decidedBy = *req.DecidedBy
	}
	if req.DecidedAt != nil {
		decidedAt = req.DecidedAt.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (id, employee_id, name, department, title,
			category, start_date, end_date, note, attachment_id,
			status, created_at, decided_by, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.EmployeeID, req.Name, req.Department, req.Title,
		string(req.Category),
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
		req.Note, req.AttachmentID,
		string(req.Status), req.CreatedAt.Format(time.RFC3339),
		decidedBy, decidedAt)
	return err
}

func (s *Store) GetRequest(ctx context.Context, id string) (*cuti.LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx, selectRequest+` WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, cuti.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) ListRequests(ctx context.Context) ([]cuti.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, selectRequest+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cuti.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// DecideRequest applies a terminal decision with a guarded UPDATE so the
// transition happens exactly once even under concurrent approvers.
func (s *Store) DecideRequest(ctx context.Context, id string, status cuti.Status, actor string, at time.Time) (*cuti.LeaveRequest, error) {
	if !status.Terminal() {
		return nil, cuti.ErrNotPendingDecision
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE requests
		SET status = ?, decided_by = ?, decided_at = ?
		WHERE id = ? AND status = ?`,
		string(status), actor, at.Format(time.RFC3339), id, string(cuti.StatusPending))
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Either the request doesn't exist or it was already decided.
		if _, err := s.GetRequest(ctx, id); err != nil {
			return nil, err
		}
		return nil, cuti.ErrRequestDecided
	}

	return s.GetRequest(ctx, id)
}

const selectRequest = `
	SELECT id, employee_id, name, department, title,
		category, start_date, end_date, note, attachment_id,
		status, created_at, decided_by, decided_at
	FROM requests`

func scanRequest(sc scanner) (*cuti.LeaveRequest, error) {
	var req cuti.LeaveRequest
	var category, status, startDate, endDate, createdAt string
	var decidedBy, decidedAt sql.NullString

	err := sc.Scan(&req.ID, &req.EmployeeID, &req.Name, &req.Department, &req.Title,
		&category, &startDate, &endDate, &req.Note, &req.AttachmentID,
		&status, &createdAt, &decidedBy, &decidedAt)
	if err != nil {
		return nil, err
	}

	if req.Category, err = cuti.ParseCategory(category); err != nil {
		return nil, err
	}
	if req.Status, err = cuti.ParseStatus(status); err != nil {
		return nil, err
	}
	if req.StartDate, err = time.Parse("2006-01-02", startDate); err != nil {
		return nil, err
	}
	if req.EndDate, err = time.Parse("2006-01-02", endDate); err != nil {
		return nil, err
	}
	if req.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if decidedBy.Valid {
		req.DecidedBy = &decidedBy.String
	}
	if decidedAt.Valid {
		t, err := time.Parse(time.RFC3339, decidedAt.String)
		if err != nil {
			return nil, err
		}
		req.DecidedAt = &t
	}
	return &req, nil
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot reads all three collections inside one read transaction so
// aggregation sees a consistent view even while writers are active.
func (s *Store) Snapshot(ctx context.Context) (cuti.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return cuti.Snapshot{}, err
	}
	defer tx.Rollback()

	var snap cuti.Snapshot

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, department, title, hire_date
		FROM employees ORDER BY name, department`)
	if err != nil {
		return cuti.Snapshot{}, err
	}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			rows.Close()
			return cuti.Snapshot{}, err
		}
		snap.Employees = append(snap.Employees, *emp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return cuti.Snapshot{}, err
	}

	rows, err = tx.QueryContext(ctx, `
		SELECT id, employee_id,
			limit_annual, limit_deducted, limit_project,
			limit_sick, limit_special, limit_custom
		FROM policies ORDER BY employee_id`)
	if err != nil {
		return cuti.Snapshot{}, err
	}
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			rows.Close()
			return cuti.Snapshot{}, err
		}
		snap.Policies = append(snap.Policies, *policy)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return cuti.Snapshot{}, err
	}

	rows, err = tx.QueryContext(ctx, selectRequest+` ORDER BY created_at, id`)
	if err != nil {
		return cuti.Snapshot{}, err
	}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			rows.Close()
			return cuti.Snapshot{}, err
		}
		snap.Requests = append(snap.Requests, *req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return cuti.Snapshot{}, err
	}

	return snap, tx.Commit()
}
