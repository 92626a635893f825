/*
normalize.go - Request validation and the sick-leave conversion rule

PURPOSE:
  Validates a raw request draft and rewrites it where required before it
  enters the ledger. Normalization is the only gate into the ledger: a
  request that fails here is never enqueued, and the aggregator can assume
  every request it sees is well-formed.

CONVERSION RULE:
  A sick-leave request without a supporting attachment is silently rewritten
  to annual leave, with the note prefixed to record what happened. The
  conversion happens once, here; the ledger has no knowledge it occurred.

VALIDATION ORDER:
  1. Completeness: name, title, department, category, start and end date
  2. Category: label must be inside the fixed six-value set
  3. Date range: end date must not precede the start date

  An empty category is "missing" (IncompleteRequestError); a non-empty
  unrecognized one is a data-integrity fault (UnknownCategoryError).

SIDE EFFECTS:
  None. The draft is read, never mutated; the returned request is a fresh
  value with status forced to pending.

SEE ALSO:
  - errors.go: the three validation error types
  - aggregate.go: consumes only normalized requests
*/
package cuti

import "time"

// SickConversionNotePrefix is prepended to the note of a sick request that
// is recorded as annual leave for lack of a supporting document.
const SickConversionNotePrefix = "Sick leave without supporting document, recorded as annual leave: "

// RequestDraft is a raw leave request as submitted, before validation.
// Dates are calendar dates; a zero time means the field was not supplied.
type RequestDraft struct {
	EmployeeID   string
	Name         string
	Department   string
	Title        string
	Category     string
	StartDate    time.Time
	EndDate      time.Time
	Note         string
	AttachmentID string
}

// Normalize validates a draft and returns the normalized LeaveRequest with
// status forced to pending. The caller supplies the creation timestamp so
// normalization stays a pure function of its inputs.
//
// Fails with IncompleteRequestError, UnknownCategoryError, or
// InvalidDateRangeError; on failure no request is produced.
func Normalize(d RequestDraft, now time.Time) (LeaveRequest, error) {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Department == "" {
		missing = append(missing, "department")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	if d.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if d.EndDate.IsZero() {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return LeaveRequest{}, &IncompleteRequestError{Missing: missing}
	}

	category, err := ParseCategory(d.Category)
	if err != nil {
		return LeaveRequest{}, err
	}

	if d.EndDate.Before(d.StartDate) {
		return LeaveRequest{}, &InvalidDateRangeError{Start: d.StartDate, End: d.EndDate}
	}

	note := d.Note
	if category == CategorySick && d.AttachmentID == "" {
		category = CategoryAnnual
		note = SickConversionNotePrefix + d.Note
	}

	return LeaveRequest{
		EmployeeID:   d.EmployeeID,
		Name:         d.Name,
		Department:   d.Department,
		Title:        d.Title,
		Category:     category,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Note:         note,
		AttachmentID: d.AttachmentID,
		Status:       StatusPending,
		CreatedAt:    now,
	}, nil
}
