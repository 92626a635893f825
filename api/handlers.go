/*
handlers.go - HTTP API handlers for the leave administration suite

PURPOSE:
  Exposes the leave quota engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees              List all employees
    POST   /api/employees              Create employee
    GET    /api/employees/{id}         Get employee details
    GET    /api/employees/{id}/policy  Get the employee's leave policy

  Policies:
    GET    /api/policies               List all policies
    POST   /api/policies               Create/replace an employee's policy

  Requests:
    GET    /api/requests               List all requests
    POST   /api/requests               Submit a draft (runs the normalizer)
    GET    /api/requests/{id}          Get a request
    POST   /api/requests/{id}/approve  Approve (exactly once)
    POST   /api/requests/{id}/reject   Reject (exactly once)

  Ledger:
    GET    /api/ledger?as_of=          Aggregated per-employee rows
    GET    /api/ledger/warnings?as_of= Quota-exceedance warnings

  Demo:
    POST   /api/demo/seed              Load the demo dataset

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body or dates
  - 404: Resource not found
  - 409: Request already decided
  - 422: Validation failure from the normalizer (stable error codes)
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization; access control belongs to the
  excluded gateway layer.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/leave-ledger/cuti"
	"github.com/warp/leave-ledger/factory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store cuti.Store

	// Now returns the wall-clock time; injectable for tests.
	Now func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store cuti.Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, emp := range employees {
		dtos[i] = toEmployeeDTO(emp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, cuti.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
		return
	}

	emp := cuti.Employee{
		ID:         req.ID,
		Name:       req.Name,
		Department: req.Department,
		Title:      req.Title,
		HireDate:   hireDate,
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployeePolicy returns the policy of an employee, if any.
func (h *Handler) GetEmployeePolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Store.GetPolicyByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get policy", err)
		return
	}
	if policy == nil {
		writeError(w, http.StatusNotFound, "Employee has no policy", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPolicyDTO(*policy))
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPolicies returns all policies.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.Store.ListPolicies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	dtos := make([]PolicyDTO, len(policies))
	for i, policy := range policies {
		dtos[i] = toPolicyDTO(policy)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertPolicy creates or replaces the policy of an employee. Usage is
// always recomputed from approved requests, so editing limits never
// adjusts used-counts.
func (h *Handler) UpsertPolicy(w http.ResponseWriter, r *http.Request) {
	var req UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	policy := cuti.LeavePolicy{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Limits:     req.Limits,
	}
	if err := h.Store.SavePolicy(r.Context(), policy); err != nil {
		if errors.Is(err, cuti.ErrNegativeLimit) {
			writeError(w, http.StatusBadRequest, "Policy limits must be non-negative", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save policy", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPolicyDTO(policy))
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListRequests returns all leave requests.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRequest returns a single request.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.Store.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, cuti.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*req))
}

// SubmitRequest normalizes and stores a leave request draft. Validation
// failures surface as 422 with a stable code so the submission form can
// show them inline.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft := cuti.RequestDraft{
		EmployeeID:   body.EmployeeID,
		Name:         body.Name,
		Department:   body.Department,
		Title:        body.Title,
		Category:     body.Category,
		Note:         body.Note,
		AttachmentID: body.AttachmentID,
	}

	var err error
	if body.StartDate != "" {
		if draft.StartDate, err = time.Parse("2006-01-02", body.StartDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
			return
		}
	}
	if body.EndDate != "" {
		if draft.EndDate, err = time.Parse("2006-01-02", body.EndDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
			return
		}
	}

	req, err := cuti.Normalize(draft, h.Now())
	if err != nil {
		writeValidationError(w, err)
		return
	}
	req.ID = uuid.NewString()

	if err := h.Store.SaveRequest(r.Context(), req); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(req))
}

// ApproveRequest approves a pending request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, cuti.StatusApproved)
}

// RejectRequest rejects a pending request.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, cuti.StatusRejected)
}

func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request, status cuti.Status) {
	var body DecideRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.Actor == "" {
		writeError(w, http.StatusBadRequest, "actor is required", nil)
		return
	}

	req, err := h.Store.DecideRequest(r.Context(), chi.URLParam(r, "id"), status, body.Actor, h.Now())
	switch {
	case errors.Is(err, cuti.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Request not found", nil)
	case errors.Is(err, cuti.ErrRequestDecided):
		writeError(w, http.StatusConflict, "Request already decided", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to decide request", err)
	default:
		writeJSON(w, http.StatusOK, toRequestDTO(*req))
	}
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// GetLedger runs the aggregation over a fresh snapshot and returns the
// per-employee rows for the admin table.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOfParam(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to snapshot store", err)
		return
	}

	rows := cuti.Aggregate(snap, asOf)
	dtos := make([]LedgerRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toLedgerRowDTO(row)
	}
	writeJSON(w, http.StatusOK, LedgerReportDTO{
		AsOf: asOf.Format("2006-01-02"),
		Rows: dtos,
	})
}

// GetWarnings returns the quota-exceedance subset for the warning banner.
func (h *Handler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOfParam(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to snapshot store", err)
		return
	}

	flagged := cuti.Exceedances(cuti.Aggregate(snap, asOf))
	warnings := make([]WarningDTO, len(flagged))
	for i, exc := range flagged {
		cats := make([]string, len(exc.Categories))
		for j, cat := range exc.Categories {
			cats[j] = string(cat)
		}
		warnings[i] = WarningDTO{Row: toLedgerRowDTO(exc.Row), Categories: cats}
	}
	writeJSON(w, http.StatusOK, WarningReportDTO{
		AsOf:     asOf.Format("2006-01-02"),
		Warnings: warnings,
	})
}

// asOfParam parses the optional as_of query parameter, defaulting to today.
// An explicit date keeps reports reproducible; "today" is only a convenience
// for interactive use.
func (h *Handler) asOfParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		now := h.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
		return time.Time{}, false
	}
	return asOf, true
}

// =============================================================================
// DEMO HANDLERS
// =============================================================================

// LoadDemoSeed loads the factory demo dataset into the store.
func (h *Handler) LoadDemoSeed(w http.ResponseWriter, r *http.Request) {
	snap := factory.DemoSeed(h.Now().UTC())

	for _, emp := range snap.Employees {
		if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed employees", err)
			return
		}
	}
	for _, policy := range snap.Policies {
		if err := h.Store.SavePolicy(r.Context(), policy); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed policies", err)
			return
		}
	}
	for _, req := range snap.Requests {
		if err := h.Store.SaveRequest(r.Context(), req); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed requests", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"employees": len(snap.Employees),
		"policies":  len(snap.Policies),
		"requests":  len(snap.Requests),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeValidationError maps normalizer failures onto 422 with stable codes
// so the submission form can render them inline.
func writeValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var incomplete *cuti.IncompleteRequestError
	switch {
	case errors.As(err, &incomplete):
		resp.Code = "incomplete_request"
		resp.Details = incomplete.Missing
	case errors.Is(err, cuti.ErrInvalidDateRange):
		resp.Code = "invalid_date_range"
	case errors.Is(err, cuti.ErrUnknownCategory):
		resp.Code = "unknown_category"
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
