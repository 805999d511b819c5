package repos

import "database/sql"

// requireRow maps zero-row UPDATEs onto sql.ErrNoRows so callers can treat
// "updated nothing" and "not found" the same way.
func requireRow(res sql.Result) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
