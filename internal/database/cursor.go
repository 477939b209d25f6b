package database

import "fmt"

// Keyset pagination helpers. Every list query fetches limit+1 rows in
// (sortKey DESC, id DESC) order; the predicate below resumes after a
// cursor without skipping or repeating rows that share a sort key.

// timeKeyset renders the resume predicate for a timestamp sort column.
// arg is the 1-based placeholder index of the cursor timestamp; the
// cursor id binds at arg+1.
func timeKeyset(sortCol, idCol string, arg int) string {
	return fmt.Sprintf("(%s < $%d OR (%s = $%d AND %s < $%d))",
		sortCol, arg, sortCol, arg, idCol, arg+1)
}

// countKeyset is timeKeyset for a computed count expression (trending).
// The expression is repeated rather than aliased because the predicate
// lives in WHERE, where select aliases are not visible.
func countKeyset(countExpr, idCol string, arg int) string {
	return fmt.Sprintf("(%s < $%d OR (%s = $%d AND %s < $%d))",
		countExpr, arg, countExpr, arg, idCol, arg+1)
}

// trimPage applies the limit+1 contract: when more than limit rows came
// back there is a next page and the slice is cut down to limit. The
// caller derives the next cursor from the last retained row.
func trimPage[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
