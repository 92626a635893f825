/*
exceed.go - Quota-exceedance detection

PURPOSE:
  Scans aggregated ledger rows for employees whose approved usage exceeds a
  configured category limit. The result drives the warning banner in the
  excluded UI layer.

ZERO-LIMIT EXEMPTION:
  A category with limit 0 is never considered exceeded, regardless of usage.
  Zero means "not tracked", not "no allowance": warnings fire only for
  categories an employee actually has a configured budget for. This is also
  why synthetic rows for unknown employees (all limits zero) can never be
  flagged.

SEE ALSO:
  - aggregate.go: produces the rows scanned here
*/
package cuti

// Exceedance flags one ledger row whose usage exceeds at least one
// configured category limit.
type Exceedance struct {
	Row LedgerRow

	// Categories lists the offending categories in canonical order.
	Categories []Category
}

// Exceedances returns the subset of rows where, for at least one category
// with a limit strictly greater than zero, the unclamped used-count exceeds
// the limit. Rows keep the order they were given in; callers needing a
// display order must sort explicitly.
func Exceedances(rows []LedgerRow) []Exceedance {
	var out []Exceedance
	for _, row := range rows {
		var over []Category
		for _, cat := range Categories() {
			limit := row.Limits.Of(cat)
			if limit > 0 && row.Used.Of(cat) > limit {
				over = append(over, cat)
			}
		}
		if len(over) > 0 {
			out = append(out, Exceedance{Row: row, Categories: over})
		}
	}
	return out
}
