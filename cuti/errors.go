/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The HTTP layer maps these onto status codes and stable error codes.

ERROR CATEGORIES:
  1. Validation errors - a submitted request fails normalization;
     recoverable, surfaced to the submitter, never enqueued
  2. Contract violations - malformed master data (negative limits) or an
     illegal state transition; rejected at the boundary

PROPAGATION POLICY:
  Validation failures are returned by Normalize and must never reach the
  aggregator. Aggregate and Exceedances are total functions over well-formed
  input and raise no domain errors of their own.

USAGE:
  var incomplete *cuti.IncompleteRequestError
  if errors.As(err, &incomplete) {
      // surface incomplete.Missing to the submitter
  }

SEE ALSO:
  - normalize.go: produces the validation errors
  - request.go: produces ErrRequestDecided
*/
package cuti

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrIncompleteRequest is the sentinel behind IncompleteRequestError.
	ErrIncompleteRequest = errors.New("incomplete request")

	// ErrInvalidDateRange is the sentinel behind InvalidDateRangeError.
	ErrInvalidDateRange = errors.New("invalid date range: end before start")

	// ErrUnknownCategory is the sentinel behind UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown leave category")

	// ErrUnknownStatus is returned when a status label is outside the
	// pending/approved/rejected set.
	ErrUnknownStatus = errors.New("unknown request status")

	// ErrRequestDecided is returned when approving or rejecting a request
	// that already carries a terminal status. Decisions happen exactly once.
	ErrRequestDecided = errors.New("request already decided")

	// ErrNotPendingDecision is returned when a decision is attempted with a
	// non-terminal target status.
	ErrNotPendingDecision = errors.New("decision status must be approved or rejected")

	// ErrNegativeLimit is returned when a policy carries a negative limit.
	ErrNegativeLimit = errors.New("policy limit must be non-negative")

	// ErrRequestNotFound is returned by stores for missing request ids.
	ErrRequestNotFound = errors.New("request not found")

	// ErrEmployeeNotFound is returned by stores for missing employee ids.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// IncompleteRequestError reports which required fields are missing on a
// submitted request draft.
type IncompleteRequestError struct {
	Missing []string // field names, in draft declaration order
}

func (e *IncompleteRequestError) Error() string {
	return fmt.Sprintf("incomplete request: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteRequestError) Unwrap() error { return ErrIncompleteRequest }

// InvalidDateRangeError reports an end date preceding the start date.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

func (e *InvalidDateRangeError) Unwrap() error { return ErrInvalidDateRange }

// UnknownCategoryError reports a category label outside the fixed six-value
// set. Treated as a data-integrity fault from the caller.
type UnknownCategoryError struct {
	Label string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown leave category: %q", e.Label)
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is a request-validation failure
// that should be surfaced to the submitter for correction.
func IsValidation(err error) bool {
	return errors.Is(err, ErrIncompleteRequest) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownCategory)
}

// IsConflict returns true if the error indicates an illegal state
// transition rather than bad input.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRequestDecided)
}
