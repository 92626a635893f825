/*
request.go - Request decision transition

PURPOSE:
  Applies the single terminal transition of a leave request's lifecycle:
  pending -> approved or pending -> rejected. A request is decided exactly
  once; re-approving or re-rejecting a decided request is refused rather
  than silently overwriting the prior decision, since approved requests
  feed the usage counts and a silent overwrite would corrupt them.

SEE ALSO:
  - store.go: DecideRequest mirrors this guard at the persistence boundary
*/
package cuti

import "time"

// Decide applies a terminal decision to a pending request.
//
// Returns ErrNotPendingDecision when status is not approved/rejected and
// ErrRequestDecided when the request already carries a terminal status.
// On success the request's status and decision audit fields are set.
func Decide(req *LeaveRequest, status Status, actor string, at time.Time) error {
	if !status.Terminal() {
		return ErrNotPendingDecision
	}
	if req.Status.Terminal() {
		return ErrRequestDecided
	}

	req.Status = status
	req.DecidedBy = &actor
	req.DecidedAt = &at
	return nil
}
