/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: the excluded
  table/warning-banner UI consumes the ledger and warning DTOs directly.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers parse DTOs and hand the engine a RequestDraft; the engine's
  normalizer owns the validation rules. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - cuti/normalize.go: The validation behind SubmitRequest
*/
package api

import (
	"time"

	"github.com/warp/leave-ledger/cuti"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Title      string `json:"title"`
	HireDate   string `json:"hire_date"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Title      string `json:"title"`
	HireDate   string `json:"hire_date"`
}

// PolicyDTO represents a leave policy in API responses.
type PolicyDTO struct {
	ID         string              `json:"id"`
	EmployeeID string              `json:"employee_id"`
	Limits     cuti.CategoryCounts `json:"limits"`
}

// UpsertPolicyRequest creates or replaces the policy of an employee.
type UpsertPolicyRequest struct {
	EmployeeID string              `json:"employee_id"`
	Limits     cuti.CategoryCounts `json:"limits"`
}

// SubmitRequestDTO is a raw leave request draft as submitted.
type SubmitRequestDTO struct {
	EmployeeID   string `json:"employee_id,omitempty"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`   // YYYY-MM-DD
	Note         string `json:"note,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}

// RequestDTO represents a normalized leave request.
type RequestDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id,omitempty"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Note         string  `json:"note,omitempty"`
	AttachmentID string  `json:"attachment_id,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

// DecideRequestDTO carries the approver identity for approve/reject.
type DecideRequestDTO struct {
	Actor string `json:"actor"`
}

// LedgerRowDTO is one aggregated ledger row for the admin table.
type LedgerRowDTO struct {
	Name            string              `json:"name"`
	Department      string              `json:"department"`
	EmployeeID      string              `json:"employee_id,omitempty"`
	Title           string              `json:"title,omitempty"`
	Limits          cuti.CategoryCounts `json:"limits"`
	Used            cuti.CategoryCounts `json:"used"`
	Pending         int                 `json:"pending"`
	Approved        int                 `json:"approved"`
	Rejected        int                 `json:"rejected"`
	Total           int                 `json:"total"`
	RemainingAnnual int                 `json:"remaining_annual"`
}

// LedgerReportDTO is the full aggregation result.
type LedgerReportDTO struct {
	AsOf string         `json:"as_of"`
	Rows []LedgerRowDTO `json:"rows"`
}

// WarningDTO flags one employee exceeding a category budget.
type WarningDTO struct {
	Row        LedgerRowDTO `json:"row"`
	Categories []string     `json:"categories"`
}

// WarningReportDTO is the exceedance scan result for the warning banner.
type WarningReportDTO struct {
	AsOf     string       `json:"as_of"`
	Warnings []WarningDTO `json:"warnings"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(emp cuti.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
		Title:      emp.Title,
		HireDate:   emp.HireDate.Format("2006-01-02"),
	}
}

func toPolicyDTO(policy cuti.LeavePolicy) PolicyDTO {
	return PolicyDTO{
		ID:         policy.ID,
		EmployeeID: policy.EmployeeID,
		Limits:     policy.Limits,
	}
}

func toRequestDTO(req cuti.LeaveRequest) RequestDTO {
	dto := RequestDTO{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		Department:   req.Department,
		Title:        req.Title,
		Category:     string(req.Category),
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		Note:         req.Note,
		AttachmentID: req.AttachmentID,
		Status:       string(req.Status),
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
		DecidedBy:    req.DecidedBy,
	}
	if req.DecidedAt != nil {
		s := req.DecidedAt.Format(time.RFC3339)
		dto.DecidedAt = &s
	}
	return dto
}

func toLedgerRowDTO(row cuti.LedgerRow) LedgerRowDTO {
	return LedgerRowDTO{
		Name:            row.Key.Name,
		Department:      row.Key.Department,
		EmployeeID:      row.EmployeeID,
		Title:           row.Title,
		Limits:          row.Limits,
		Used:            row.Used,
		Pending:         row.Pending,
		Approved:        row.Approved,
		Rejected:        row.Rejected,
		Total:           row.Total,
		RemainingAnnual: row.RemainingAnnual,
	}
}
