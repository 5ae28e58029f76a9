// internal/affiliate/affiliate.go
//
// Affiliate entity and SQL access.
//
// Context
// -------
// Affiliates are looked up by the attribution filter from either a numeric
// query id or a friendly URL slug.  Validity (not deleted, active) is
// checked by the caller via Valid(), mirroring the customer entity.
package affiliate

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Affiliate mirrors one row in the `affiliate` table.
type Affiliate struct {
	ID           int64  `db:"id"`
	FriendlySlug string `db:"friendly_slug"`
	Active       bool   `db:"active"`
	Deleted      bool   `db:"deleted"`
}

// Valid reports whether the affiliate may receive attributions.
func (a *Affiliate) Valid() bool {
	return a != nil && !a.Deleted && a.Active
}

// Repository wraps affiliate-table access for one database handle.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// ByID fetches one affiliate by numeric id.  (nil, nil) on miss.
func (r *Repository) ByID(ctx context.Context, id int64) (*Affiliate, error) {
	const q = `
        SELECT id, friendly_slug, active, deleted
          FROM affiliate
         WHERE id = ?
         LIMIT 1`
	return r.one(ctx, q, id)
}

// BySlug fetches one affiliate by its friendly URL slug.  (nil, nil) on
// miss.
func (r *Repository) BySlug(ctx context.Context, slug string) (*Affiliate, error) {
	const q = `
        SELECT id, friendly_slug, active, deleted
          FROM affiliate
         WHERE friendly_slug = ?
         LIMIT 1`
	return r.one(ctx, q, slug)
}

func (r *Repository) one(ctx context.Context, q string, arg any) (*Affiliate, error) {
	var a Affiliate
	if err := r.db.GetContext(ctx, &a, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
