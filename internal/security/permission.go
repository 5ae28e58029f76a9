// internal/security/permission.go
//
// Small query helpers for permission checks.
//
// Context
// -------
// The storefront permission model lives inside the platform database:
//
//	permission_record   (id PK, system_name)
//	permission_role_map (permission_id, role_id)
//	customer_role       (id PK, system_name, active)
//
// Filters need a fast answer to one question: do *any* of the current
// customer's roles carry permission P?  `Authorize()` answers it with one
// parameterised query.  It is thin; callers may wrap the result in their
// own per-request cache.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.
package security

import (
	"context"
	"database/sql"
)

// Permission system names consumed by the request filters.
const (
	PermissionPublicStoreAllowNavigation = "public_store.allow_navigation"
)

// Authorize reports whether *any* of the candidate roles carries the named
// permission.  It executes one query using IN (? … ?).
//
// Empty roles slice returns false, nil.
func Authorize(ctx context.Context, db *sql.DB, permission string, roles []string) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	// Construct the IN clause placeholders dynamically.
	placeholders := make([]byte, 0, len(roles)*2)
	args := make([]any, 0, len(roles)+1)
	args = append(args, permission)
	for i, r := range roles {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, r)
	}

	q := `SELECT 1
            FROM permission_record p
            JOIN permission_role_map prm ON prm.permission_id = p.id
            JOIN customer_role cr ON cr.id = prm.role_id
           WHERE p.system_name = ?
             AND cr.active = TRUE
             AND cr.system_name IN (` + string(placeholders) + `)
           LIMIT 1` // early exit once we find a hit

	var dummy int
	err := db.QueryRowContext(ctx, q, args...).Scan(&dummy)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
